package profileflow

import (
	"context"
	"io"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/api"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/models"
)

type editorBackend interface {
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	UploadTicket(ctx context.Context, kind api.ImageKind) (models.UploadTicket, error)
}

type imageUploader interface {
	Upload(ctx context.Context, ticket models.UploadTicket, filename string, file io.Reader) (string, error)
}

var draftValidate = validator.New()

var editorUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func init() {
	_ = draftValidate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return editorUsernameRe.MatchString(fl.Field().String())
	})
}

// ImageFile is a locally selected image waiting to be uploaded.
type ImageFile struct {
	Filename string
	Content  io.Reader
}

// Draft is one pending profile save. Nil images mean "keep the current URL".
type Draft struct {
	Name     string `validate:"required,max=50"`
	Username string `validate:"required,min=3,max=30,username"`
	Bio      string `validate:"max=160"`

	Avatar *ImageFile
	Banner *ImageFile

	// URLs kept when the corresponding image was not reselected
	CurrentAvatarURL string
	CurrentBannerURL string
}

// Editor coordinates the profile save: avatar upload, then banner upload,
// then the profile payload, strictly in that order. Failure at any point
// aborts the whole save; text fields are never saved without their images.
type Editor struct {
	backend  editorBackend
	uploader imageUploader
	logger   logger.Logger
}

func NewEditor(backend editorBackend, uploader imageUploader, log logger.Logger) *Editor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Editor{backend: backend, uploader: uploader, logger: log}
}

// Save validates and submits the draft. The update payload is constructed
// only after all uploads resolve.
func (e *Editor) Save(ctx context.Context, draft Draft) error {
	if err := draftValidate.Struct(draft); err != nil {
		return err
	}

	avatarURL := draft.CurrentAvatarURL
	if draft.Avatar != nil {
		url, err := e.uploadImage(ctx, api.ImageProfile, draft.Avatar)
		if err != nil {
			return err
		}
		avatarURL = url
	}

	bannerURL := draft.CurrentBannerURL
	if draft.Banner != nil {
		url, err := e.uploadImage(ctx, api.ImageBanner, draft.Banner)
		if err != nil {
			return err
		}
		bannerURL = url
	}

	return e.backend.UpdateProfile(ctx, models.ProfileUpdate{
		Name:          draft.Name,
		Username:      draft.Username,
		Bio:           draft.Bio,
		ProfilePicURL: avatarURL,
		BannerPicURL:  bannerURL,
	})
}

func (e *Editor) uploadImage(ctx context.Context, kind api.ImageKind, image *ImageFile) (string, error) {
	ticket, err := e.backend.UploadTicket(ctx, kind)
	if err != nil {
		return "", err
	}

	url, err := e.uploader.Upload(ctx, ticket, image.Filename, image.Content)
	if err != nil {
		return "", err
	}

	e.logger.Debug("Image uploaded", "kind", string(kind), "url", url)
	return url, nil
}
