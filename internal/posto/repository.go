package posto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"strconv"

	"postos/internal/geo"
	"postos/pkg/httpclient"
	"postos/pkg/metrics"
)

var (
	ErrPostoNotFound      = errors.New("nenhum posto encontrado para este tipo de combustível")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrMalformedResponse  = errors.New("resposta malformada da API de postos")
)

// APIError is a non-2xx answer from the station API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api de postos (%s): status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api de postos (%s): status %d", e.Op, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type InterfaceRepository interface {
	ListPostos(ctx context.Context) ([]Posto, error)
	Top10(ctx context.Context, fuel FuelType) ([]Posto, error)
	Sugerir(ctx context.Context, coord geo.Coordinate, fuel FuelType) (Posto, error)
}

type InterfaceAdminRepository interface {
	InterfaceRepository
	DeletePosto(ctx context.Context, id int64, cookies []*http.Cookie) error
	UpdatePosto(ctx context.Context, id int64, arg Update, cookies []*http.Cookie) (Posto, error)
	CreatePosto(ctx context.Context, arg Input, image *Image, cookies []*http.Cookie) (Posto, error)
	Login(ctx context.Context, usuario, senha string) ([]*http.Cookie, error)
}

// Repository talks to the remote station API.
type Repository struct {
	client httpclient.Interface
}

func NewPostosRepository(client httpclient.Interface) *Repository {
	return &Repository{client: client}
}

func (r *Repository) ListPostos(ctx context.Context) (postos []Posto, err error) {
	defer observe("list", &err)

	resp, err := r.client.Get(ctx, "/api/postos")
	if err != nil {
		return nil, fmt.Errorf("listar postos: %w", err)
	}
	if err := checkStatus("list", resp); err != nil {
		return nil, err
	}
	return decode[[]Posto](resp.Body)
}

func (r *Repository) Top10(ctx context.Context, fuel FuelType) (postos []Posto, err error) {
	defer observe("top10", &err)

	resp, err := r.client.Get(ctx, "/api/top10?"+neturl.Values{"tipo": {string(fuel)}}.Encode())
	if err != nil {
		return nil, fmt.Errorf("ranking de postos: %w", err)
	}
	if err := checkStatus("top10", resp); err != nil {
		return nil, err
	}
	return decode[[]Posto](resp.Body)
}

func (r *Repository) Sugerir(ctx context.Context, coord geo.Coordinate, fuel FuelType) (p Posto, err error) {
	defer observe("sugerir", &err)

	query := neturl.Values{
		"lat":  {strconv.FormatFloat(coord.Lat, 'f', -1, 64)},
		"lon":  {strconv.FormatFloat(coord.Lon, 'f', -1, 64)},
		"tipo": {string(fuel)},
	}
	resp, err := r.client.Get(ctx, "/api/sugerir?"+query.Encode())
	if err != nil {
		return Posto{}, fmt.Errorf("sugerir posto: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Posto{}, ErrPostoNotFound
	}
	if err := checkStatus("sugerir", resp); err != nil {
		return Posto{}, err
	}
	return decode[Posto](resp.Body)
}

func (r *Repository) DeletePosto(ctx context.Context, id int64, cookies []*http.Cookie) (err error) {
	defer observe("delete", &err)

	resp, err := r.client.Do(ctx, http.MethodDelete, "/api/postos/"+strconv.FormatInt(id, 10), nil,
		httpclient.WithCookies(cookies))
	if err != nil {
		return fmt.Errorf("excluir posto %d: %w", id, err)
	}
	return checkStatus("delete", resp)
}

func (r *Repository) UpdatePosto(ctx context.Context, id int64, arg Update, cookies []*http.Cookie) (p Posto, err error) {
	defer observe("update", &err)

	body, err := json.Marshal(arg)
	if err != nil {
		return Posto{}, err
	}
	resp, err := r.client.Do(ctx, http.MethodPut, "/api/postos/"+strconv.FormatInt(id, 10), bytes.NewReader(body),
		httpclient.WithHeader("Content-Type", "application/json"),
		httpclient.WithCookies(cookies))
	if err != nil {
		return Posto{}, fmt.Errorf("atualizar posto %d: %w", id, err)
	}
	if err := checkStatus("update", resp); err != nil {
		return Posto{}, err
	}
	result, err := decode[mutationResponse](resp.Body)
	if err != nil {
		return Posto{}, err
	}
	return result.Posto, nil
}

// CreatePosto sends a multipart form when image is set, JSON otherwise.
func (r *Repository) CreatePosto(ctx context.Context, arg Input, image *Image, cookies []*http.Cookie) (p Posto, err error) {
	defer observe("create", &err)

	var body bytes.Buffer
	var contentType string
	if image != nil {
		contentType, err = writeMultipart(&body, arg, image)
		if err != nil {
			return Posto{}, fmt.Errorf("montar formulário: %w", err)
		}
	} else {
		if err := json.NewEncoder(&body).Encode(arg); err != nil {
			return Posto{}, err
		}
		contentType = "application/json"
	}

	resp, err := r.client.Do(ctx, http.MethodPost, "/api/postos", &body,
		httpclient.WithHeader("Content-Type", contentType),
		httpclient.WithCookies(cookies))
	if err != nil {
		return Posto{}, fmt.Errorf("cadastrar posto: %w", err)
	}
	if err := checkStatus("create", resp); err != nil {
		return Posto{}, err
	}
	result, err := decode[mutationResponse](resp.Body)
	if err != nil {
		return Posto{}, err
	}
	return result.Posto, nil
}

// Login returns the session cookies issued by the station API.
func (r *Repository) Login(ctx context.Context, usuario, senha string) (cookies []*http.Cookie, err error) {
	defer observe("login", &err)

	body, err := json.Marshal(loginRequest{Usuario: usuario, Senha: senha})
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(ctx, http.MethodPost, "/api/login", bytes.NewReader(body),
		httpclient.WithHeader("Content-Type", "application/json"))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if err := checkStatus("login", resp); err != nil {
		return nil, err
	}
	return resp.Cookies, nil
}

func writeMultipart(buf *bytes.Buffer, arg Input, image *Image) (string, error) {
	w := multipart.NewWriter(buf)
	fields := [][2]string{
		{"nome", arg.Nome},
		{"endereco", arg.Endereco},
		{"latitude", strconv.FormatFloat(arg.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(arg.Longitude, 'f', -1, 64)},
		{"preco_gasolina", formatPrice(arg.PrecoGasolina)},
		{"preco_etanol", formatPrice(arg.PrecoEtanol)},
		{"preco_diesel", formatPrice(arg.PrecoDiesel)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", err
		}
	}

	part, err := w.CreateFormFile("imagem", image.Filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return w.FormDataContentType(), nil
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func checkStatus(op string, resp *httpclient.Response) error {
	err := resp.Err()
	if err == nil {
		return nil
	}
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode, Err: err}
	var body errorResponse
	if json.Unmarshal(resp.Body, &body) == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

func decode[T any](data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out, nil
}

func observe(op string, errp *error) {
	metrics.RemoteRequests.WithLabelValues(op, metrics.Outcome(*errp)).Inc()
}
