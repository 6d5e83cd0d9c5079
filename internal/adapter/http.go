package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/utils"
	"github.com/MKhiriev/go-tree-sync/models"
)

const (
	pathManifest       = "/manifest"
	pathArchive        = "/archive"
	pathPartialArchive = "/archive-partial"
	pathVersion        = "/version"

	headerTraceID = "X-Trace-ID"
)

type httpOriginAdapter struct {
	client *utils.HTTPClient

	token          string
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHTTPOriginAdapter constructs an HTTP implementation of [OriginAdapter]
// for the origin at adapterCfg.BaseURL, which already includes the route
// prefix.
//
// adapterCfg.RequestTimeout bounds manifest and version requests. Archive
// downloads are bounded only by the caller's context, since their duration
// grows with the size of the tree.
func NewHTTPOriginAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) OriginAdapter {
	return &httpOriginAdapter{
		client:         utils.NewHTTPClient(strings.TrimRight(adapterCfg.BaseURL, "/"), adapterCfg.ConnectTimeout),
		token:          appCfg.Token,
		requestTimeout: adapterCfg.RequestTimeout,
		logger:         logger,
	}
}

// FetchManifests implements [OriginAdapter]. The manifest is requested
// gzip-compressed and decoded while it streams in.
func (h *httpOriginAdapter) FetchManifests(ctx context.Context, keys []string) (models.RootManifests, error) {
	ctx, cancel := h.withRequestTimeout(ctx)
	defer cancel()

	req := h.authedRequest(ctx).
		SetHeader("Accept-Encoding", "gzip").
		SetDoNotParseResponse(true)
	if len(keys) > 0 {
		req.SetQueryParam("paths", strings.Join(keys, ","))
	}

	resp, err := req.Get(pathManifest)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest request: %w", ErrRequestFailed, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var r io.Reader = body
	if strings.EqualFold(resp.Header().Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("%w: manifest encoding: %w", ErrInvalidResponse, err)
		}
		defer gz.Close()
		r = gz
	}

	var manifests models.RootManifests
	if err = json.NewDecoder(r).Decode(&manifests); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: decode manifest: %w", ErrRequestFailed, ctxErr)
		}
		return nil, fmt.Errorf("%w: decode manifest: %w", ErrInvalidResponse, err)
	}
	if manifests == nil {
		manifests = models.RootManifests{}
	}

	h.logger.Debug().Int("roots", len(manifests)).Msg("manifests fetched")
	return manifests, nil
}

// DownloadArchive implements [OriginAdapter].
func (h *httpOriginAdapter) DownloadArchive(ctx context.Context, key string, w io.Writer) (int64, error) {
	req := h.authedRequest(ctx).SetQueryParam("path", key)

	n, err := h.download(ctx, req, http.MethodGet, pathArchive, w)
	if err != nil {
		return n, fmt.Errorf("download archive %s: %w", key, err)
	}
	return n, nil
}

// DownloadPartialArchive implements [OriginAdapter].
func (h *httpOriginAdapter) DownloadPartialArchive(ctx context.Context, archiveReq models.PartialArchiveRequest, w io.Writer) (int64, error) {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(archiveReq)

	n, err := h.download(ctx, req, http.MethodPost, pathPartialArchive, w)
	if err != nil {
		return n, fmt.Errorf("download partial archive %s: %w", archiveReq.Path, err)
	}
	return n, nil
}

// Version implements [OriginAdapter].
func (h *httpOriginAdapter) Version(ctx context.Context) (string, error) {
	ctx, cancel := h.withRequestTimeout(ctx)
	defer cancel()

	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		Get(pathVersion)
	if err != nil {
		return "", fmt.Errorf("%w: version request: %w", ErrRequestFailed, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return "", fmt.Errorf("%w: read version: %w", ErrIncompleteTransfer, err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// download executes req and copies a successful body into w. The number of
// bytes copied must match Content-Length when the origin announced one.
// Failures writing into w are returned without a transport sentinel, so the
// caller can tell a full disk from a broken connection.
func (h *httpOriginAdapter) download(ctx context.Context, req *resty.Request, method, url string, w io.Writer) (int64, error) {
	resp, err := req.SetDoNotParseResponse(true).Execute(method, url)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	dst := &recordingWriter{w: w}
	n, err := io.Copy(dst, body)
	if err != nil {
		if dst.err != nil {
			return n, fmt.Errorf("write archive: %w", dst.err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, fmt.Errorf("%w: after %d bytes: %w", ErrIncompleteTransfer, n, ctxErr)
		}
		return n, fmt.Errorf("%w: after %d bytes: %w", ErrIncompleteTransfer, n, err)
	}

	if expected := resp.RawResponse.ContentLength; expected >= 0 && n != expected {
		return n, fmt.Errorf("%w: received %d of %d bytes", ErrIncompleteTransfer, n, expected)
	}

	h.logger.Debug().Str("url", url).Int64("bytes", n).Msg("archive downloaded")
	return n, nil
}

func (h *httpOriginAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token)

	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(headerTraceID, traceID)
	}
	return req
}

func (h *httpOriginAdapter) withRequestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

// recordingWriter remembers the first error returned by w.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (r *recordingWriter) Write(p []byte) (int, error) {
	n, err := r.w.Write(p)
	if err != nil && r.err == nil {
		r.err = err
	}
	return n, err
}
