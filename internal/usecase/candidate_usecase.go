package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/talent-vault/internal/apperror"
	"github.com/fadilmartias/talent-vault/internal/metrics"
	"github.com/fadilmartias/talent-vault/internal/model"
	"github.com/fadilmartias/talent-vault/internal/repository"
	"github.com/fadilmartias/talent-vault/internal/skill"
	"github.com/fadilmartias/talent-vault/internal/storage"
	"github.com/google/uuid"
)

// DownloadLinkTTL is how long a signed résumé link stays valid.
const DownloadLinkTTL = 10 * time.Minute

const (
	defaultStorageTimeout = 15 * time.Second
	defaultDBTimeout      = 10 * time.Second
	fallbackContentType   = "application/octet-stream"
)

// CandidateStore persists candidate records.
type CandidateStore interface {
	Create(ctx context.Context, c *model.Candidate) error
	FindAll(ctx context.Context) ([]model.Candidate, error)
	FindBySkill(ctx context.Context, skill string) ([]model.Candidate, error)
	FindByID(ctx context.Context, id string) (*model.Candidate, error)
}

type CandidateOptions struct {
	StorageTimeout time.Duration
	DBTimeout      time.Duration
	Metrics        *metrics.Manager
	Logger         *slog.Logger
	Now            func() time.Time
	NewID          func() (string, error)
}

type CandidateUsecase struct {
	store          CandidateStore
	blobs          storage.BlobStore
	storageTimeout time.Duration
	dbTimeout      time.Duration
	metrics        *metrics.Manager
	log            *slog.Logger
	now            func() time.Time
	newID          func() (string, error)
}

func NewCandidateUsecase(store CandidateStore, blobs storage.BlobStore, opts CandidateOptions) *CandidateUsecase {
	uc := &CandidateUsecase{
		store:          store,
		blobs:          blobs,
		storageTimeout: opts.StorageTimeout,
		dbTimeout:      opts.DBTimeout,
		metrics:        opts.Metrics,
		log:            opts.Logger,
		now:            opts.Now,
		newID:          opts.NewID,
	}
	if uc.storageTimeout <= 0 {
		uc.storageTimeout = defaultStorageTimeout
	}
	if uc.dbTimeout <= 0 {
		uc.dbTimeout = defaultDBTimeout
	}
	if uc.log == nil {
		uc.log = slog.Default()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = newUUID
	}
	return uc
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// UploadInput is one multipart submission. Body is nil when no file was sent.
type UploadInput struct {
	Name        string
	RawSkills   string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the file, then the record. A record failure leaves the blob
// in place; its key is logged so it can be reconciled by hand.
func (uc *CandidateUsecase) Upload(ctx context.Context, in UploadInput) (*model.Candidate, error) {
	if in.Body == nil || in.FileName == "" {
		uc.metrics.RecordUpload(metrics.UploadInvalid)
		return nil, apperror.Validation("upload.validate", "resume file is required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		uc.metrics.RecordUpload(metrics.UploadInvalid)
		return nil, apperror.Validation("upload.validate", "name is required")
	}
	skills := skill.NormalizeRaw(in.RawSkills)
	if len(skills) == 0 {
		uc.metrics.RecordUpload(metrics.UploadInvalid)
		return nil, apperror.Validation("upload.validate", "at least one skill is required")
	}

	id, err := uc.newID()
	if err != nil {
		uc.metrics.RecordUpload(metrics.UploadInternalFailed)
		return nil, apperror.Dependency("upload.new_id", "failed to upload resume", err)
	}
	uploadedAt := uc.now().UTC()
	key := buildBlobKey(uploadedAt, id, in.FileName)
	contentType := detectContentType(in.ContentType, in.FileName)

	candidate := &model.Candidate{
		ID:               id,
		Name:             name,
		BlobKey:          key,
		OriginalFileName: in.FileName,
		ContentType:      contentType,
		UploadedAt:       uploadedAt,
	}
	if err := candidate.SetSkills(skills); err != nil {
		uc.metrics.RecordUpload(metrics.UploadInternalFailed)
		return nil, apperror.Dependency("upload.encode_skills", "failed to upload resume", err)
	}

	putCtx, cancel := context.WithTimeout(ctx, uc.storageTimeout)
	location, err := uc.blobs.Put(putCtx, key, in.Body, in.Size, contentType)
	cancel()
	if err != nil {
		uc.metrics.RecordUpload(metrics.UploadStorageFailed)
		return nil, apperror.Dependency("upload.put_blob", "failed to upload resume", err)
	}
	candidate.ResumeURL = location

	dbCtx, cancel := context.WithTimeout(ctx, uc.dbTimeout)
	err = uc.store.Create(dbCtx, candidate)
	cancel()
	if err != nil {
		uc.metrics.RecordUpload(metrics.UploadDatabaseFailed)
		uc.logOrphan(ctx, key, id, err)
		return nil, apperror.Dependency("upload.create_record", "failed to upload resume", err)
	}

	uc.metrics.RecordUpload(metrics.UploadOK)
	uc.log.InfoContext(ctx, "resume uploaded", "candidate_id", id, "blob_key", key, "skills", len(skills))
	return candidate, nil
}

// List returns every candidate, or only those holding skill exactly when
// skill is non-empty. The result is never nil.
func (uc *CandidateUsecase) List(ctx context.Context, skillFilter string) ([]model.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.dbTimeout)
	defer cancel()

	var (
		out []model.Candidate
		err error
	)
	if skillFilter == "" {
		out, err = uc.store.FindAll(ctx)
	} else {
		out, err = uc.store.FindBySkill(ctx, skillFilter)
	}
	uc.metrics.RecordCandidateQuery(skillFilter != "")
	if err != nil {
		return nil, apperror.Dependency("candidates.query", "failed to fetch candidates", err)
	}
	if out == nil {
		out = []model.Candidate{}
	}
	return out, nil
}

// ResolveDownload returns where a client should be redirected to read the
// résumé of candidate id.
func (uc *CandidateUsecase) ResolveDownload(ctx context.Context, id string) (string, error) {
	dbCtx, cancel := context.WithTimeout(ctx, uc.dbTimeout)
	candidate, err := uc.store.FindByID(dbCtx, id)
	cancel()
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return "", apperror.NotFound("download.lookup", "candidate not found")
	}
	if err != nil {
		return "", apperror.Dependency("download.lookup", "failed to resolve download", err)
	}

	if candidate.BlobKey != "" && uc.blobs.CanSign() {
		signCtx, cancel := context.WithTimeout(ctx, uc.storageTimeout)
		defer cancel()
		link, err := uc.blobs.SignRead(signCtx, candidate.BlobKey, DownloadLinkTTL)
		if err != nil {
			return "", apperror.Dependency("download.sign", "failed to generate download link", err)
		}
		uc.metrics.RecordDownloadLink(metrics.LinkSigned)
		return link, nil
	}
	if candidate.ResumeURL != "" {
		uc.metrics.RecordDownloadLink(metrics.LinkDirect)
		return candidate.ResumeURL, nil
	}
	return "", apperror.Configuration("download.sign", "download link unavailable")
}

func (uc *CandidateUsecase) logOrphan(ctx context.Context, key, id string, err error) {
	uc.metrics.RecordOrphanedBlob()
	uc.log.ErrorContext(ctx, "candidate record not saved, blob left in storage",
		"orphaned_blob_key", key,
		"candidate_id", id,
		"error", err,
	)
}

// buildBlobKey is unique per upload because id is, even for identical file
// names stored in the same millisecond.
func buildBlobKey(at time.Time, id, fileName string) string {
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + id + "-" + sanitizeFilename(fileName)
}

// sanitizeFilename keeps the base name, replacing runs of anything outside
// [A-Za-z0-9._-] with a single underscore.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" || out == "." || out == ".." {
		return "resume"
	}
	return out
}

func detectContentType(header, fileName string) string {
	if header = strings.TrimSpace(header); header != "" {
		return header
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); ct != "" {
		return ct
	}
	return fallbackContentType
}
