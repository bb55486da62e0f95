package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postos/internal/geolocation"
	"postos/internal/posto"
	"postos/validation"
)

var (
	ErrCoordinatesRequired = errors.New("latitude e longitude são obrigatórias")
	ErrInvalidImage        = errors.New("o arquivo enviado não é uma imagem")
)

// ImageStore keeps uploaded station images and returns their public URL.
type ImageStore interface {
	UploadFile(ctx context.Context, fileBytes []byte, fileName, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

type InterfaceService interface {
	ListPostos(ctx context.Context, q string) ([]posto.Posto, error)
	CreatePosto(ctx context.Context, form PostoForm, cookies []*http.Cookie) (posto.Posto, error)
	UpdatePosto(ctx context.Context, id int64, data UpdatePostoRequest, cookies []*http.Cookie) (posto.Posto, error)
	DeletePosto(ctx context.Context, id int64, cookies []*http.Cookie) error
}

type Service struct {
	repository posto.InterfaceAdminRepository
	geocoder   geolocation.Geocoder
	images     ImageStore
}

// NewAdminService accepts a nil geocoder or image store; the matching features are then off.
func NewAdminService(repository posto.InterfaceAdminRepository, geocoder geolocation.Geocoder, images ImageStore) *Service {
	return &Service{repository: repository, geocoder: geocoder, images: images}
}

// ListPostos filters by name or address ignoring case and accents.
func (s *Service) ListPostos(ctx context.Context, q string) ([]posto.Posto, error) {
	postos, err := s.repository.ListPostos(ctx)
	if err != nil {
		return nil, err
	}

	term := validation.NormalizeText(q)
	if term == "" {
		return postos, nil
	}
	filtered := make([]posto.Posto, 0, len(postos))
	for _, p := range postos {
		if strings.Contains(validation.NormalizeText(p.Nome), term) ||
			strings.Contains(validation.NormalizeText(p.Endereco), term) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *Service) CreatePosto(ctx context.Context, form PostoForm, cookies []*http.Cookie) (posto.Posto, error) {
	input := posto.Input{
		Nome:          strings.TrimSpace(form.Nome),
		Endereco:      strings.TrimSpace(form.Endereco),
		PrecoGasolina: form.PrecoGasolina,
		PrecoEtanol:   form.PrecoEtanol,
		PrecoDiesel:   form.PrecoDiesel,
	}

	if form.Latitude != nil && form.Longitude != nil {
		input.Latitude, input.Longitude = *form.Latitude, *form.Longitude
	} else {
		if s.geocoder == nil {
			return posto.Posto{}, ErrCoordinatesRequired
		}
		coord, err := s.geocoder.Geocode(ctx, input.Endereco)
		if err != nil {
			return posto.Posto{}, err
		}
		input.Latitude, input.Longitude = coord.Lat, coord.Lon
	}

	image := form.Imagem
	if image != nil && !strings.HasPrefix(image.ContentType, "image/") {
		return posto.Posto{}, ErrInvalidImage
	}
	if image == nil || s.images == nil {
		return s.repository.CreatePosto(ctx, input, image, cookies)
	}

	key := "postos/" + uuid.NewString() + strings.ToLower(path.Ext(image.Filename))
	url, err := s.images.UploadFile(ctx, image.Data, key, image.ContentType)
	if err != nil {
		return posto.Posto{}, fmt.Errorf("enviar imagem: %w", err)
	}
	input.Imagem = url

	created, err := s.repository.CreatePosto(ctx, input, nil, cookies)
	if err != nil {
		if delErr := s.images.DeleteFile(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("imagem órfã no bucket")
		}
		return posto.Posto{}, err
	}
	return created, nil
}

func (s *Service) UpdatePosto(ctx context.Context, id int64, data UpdatePostoRequest, cookies []*http.Cookie) (posto.Posto, error) {
	return s.repository.UpdatePosto(ctx, id, data.toUpdate(), cookies)
}

func (s *Service) DeletePosto(ctx context.Context, id int64, cookies []*http.Cookie) error {
	return s.repository.DeletePosto(ctx, id, cookies)
}
