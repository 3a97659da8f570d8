// Package drive provides a document source backed by Google Drive.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/halcyon-labs/docindexer/internal/connectors/google"
	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Google Workspace MIME types.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
)

// exportMimes maps Google Workspace types to the OOXML format they are
// exported as. Native Google files carry no bytes of their own, so the
// listing advertises the export format and Fetch performs the export.
var exportMimes = map[string]string{
	MimeTypeGoogleDoc:    domain.MIMEWord,
	MimeTypeGoogleSheet:  domain.MIMESpreadsheet,
	MimeTypeGoogleSlides: domain.MIMEPresentation,
}

// Default configuration values.
const (
	DefaultPageSize    = 1000
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// listFields are the file attributes requested per page.
const listFields = "nextPageToken, files(id, name, mimeType, modifiedTime, size, trashed)"

// Config holds configuration for the Google Drive source.
type Config struct {
	// CredentialsFile is the path to a service account key file
	// (required). Folders to index must be shared with the service
	// account's email address.
	CredentialsFile string

	// PageSize is the listing page size (default: 1000, Drive's max).
	PageSize int64

	// MaxFileSize caps fetched documents (default: 50MB). Larger files
	// are skipped at listing time.
	MaxFileSize int64

	// RateLimit overrides the default Drive API rate limit.
	RateLimit google.RateLimitConfig
}

// Source lists and fetches documents from Google Drive.
type Source struct {
	svc         *drive.Service
	limiter     *google.RateLimiter
	pageSize    int64
	maxFileSize int64
}

// NewSource creates a Drive source authenticated with a service account.
func NewSource(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("drive: credentials file is required")
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	limiter := google.NewRateLimiter()
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = google.NewRateLimiterWithConfig(cfg.RateLimit)
	}

	return &Source{
		svc:         svc,
		limiter:     limiter,
		pageSize:    cfg.PageSize,
		maxFileSize: cfg.MaxFileSize,
	}, nil
}

// folderEntry is one folder queued for listing.
type folderEntry struct {
	id   string
	path string
}

// List walks the folder tree breadth-first and returns descriptors for
// every indexable document found. A visited set guards against folder
// cycles, which shared Drive trees can contain.
func (s *Source) List(ctx context.Context, folderID string, recursive bool) ([]domain.DocumentInfo, error) {
	queue := []folderEntry{{id: folderID, path: ""}}
	visited := map[string]bool{folderID: true}

	var docs []domain.DocumentInfo
	for len(queue) > 0 {
		folder := queue[0]
		queue = queue[1:]

		files, err := s.listFolder(ctx, folder.id)
		if err != nil {
			if google.IsNotFound(err) {
				return nil, fmt.Errorf("folder %s not found or not shared with the service account: %w", folder.id, err)
			}
			if google.IsUnauthorized(err) {
				return nil, fmt.Errorf("list folder %s: check the service account key: %w", folder.id, err)
			}
			return nil, fmt.Errorf("list folder %s: %w", folder.id, err)
		}

		for _, file := range files {
			if file.Trashed {
				continue
			}

			if file.MimeType == MimeTypeFolder {
				if recursive && !visited[file.Id] {
					visited[file.Id] = true
					queue = append(queue, folderEntry{
						id:   file.Id,
						path: path.Join(folder.path, file.Name),
					})
				}
				continue
			}

			info, ok := s.toDocumentInfo(file, folder.path)
			if !ok {
				continue
			}
			docs = append(docs, info)
		}
	}

	return docs, nil
}

// Fetch downloads the raw bytes of a document. Native Google files are
// exported to their OOXML equivalent; everything else is downloaded
// as-is. Safe for concurrent callers.
func (s *Source) Fetch(ctx context.Context, documentID string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	meta, err := s.svc.Files.Get(documentID).Fields("id, mimeType").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", documentID, s.wrapAPIError(err))
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if exportMime, ok := exportMimes[meta.MimeType]; ok {
		httpResp, err := s.svc.Files.Export(documentID, exportMime).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("export file %s: %w", documentID, s.wrapAPIError(err))
		}
		defer httpResp.Body.Close()
		return readLimited(httpResp.Body, s.maxFileSize)
	}

	httpResp, err := s.svc.Files.Get(documentID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", documentID, s.wrapAPIError(err))
	}
	defer httpResp.Body.Close()
	return readLimited(httpResp.Body, s.maxFileSize)
}

// listFolder pages through one folder's direct children.
func (s *Source) listFolder(ctx context.Context, folderID string) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)

	var files []*drive.File
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := s.svc.Files.List().
			Q(query).
			Fields(listFields).
			PageSize(s.pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return nil, s.wrapAPIError(err)
		}

		files = append(files, page.Files...)
		pageToken = page.NextPageToken
		if pageToken == "" {
			return files, nil
		}
	}
}

// toDocumentInfo converts a Drive file to a document descriptor,
// reporting false for files the pipeline cannot index.
func (s *Source) toDocumentInfo(file *drive.File, folderPath string) (domain.DocumentInfo, bool) {
	mimeType := file.MimeType
	name := file.Name
	if exportMime, ok := exportMimes[mimeType]; ok {
		mimeType = exportMime
	} else if file.Size > s.maxFileSize {
		return domain.DocumentInfo{}, false
	}

	info := domain.DocumentInfo{
		ID:           file.Id,
		Name:         name,
		Path:         folderPath,
		MIMEType:     mimeType,
		Size:         file.Size,
		ModifiedTime: parseModifiedTime(file.ModifiedTime),
	}
	if !info.Indexable() {
		return domain.DocumentInfo{}, false
	}
	return info, true
}

func parseModifiedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// wrapAPIError maps a Drive API error onto the connector's error
// taxonomy. A 429 feeds its Retry-After back into the limiter so
// subsequent calls back off instead of hammering the quota.
func (s *Source) wrapAPIError(err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(retryAfterSeconds(err))
	}
	return google.WrapError(err)
}

// retryAfterSeconds extracts the Retry-After header from a 429, or 0
// when absent.
func retryAfterSeconds(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil {
		return 0
	}
	return secs
}

// readLimited reads at most limit bytes, failing outright when the
// content is larger rather than handing a silently truncated document
// to the extractors.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content exceeds the %d byte limit", limit)
	}
	return data, nil
}
