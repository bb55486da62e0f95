package infra

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postos/infra/token"
	"postos/internal/admin"
	"postos/internal/geolocation"
	"postos/internal/login"
	"postos/internal/mapa"
	"postos/internal/posto"
	"postos/internal/routes"
	"postos/internal/ws"
	"postos/pkg"
	"postos/pkg/httpclient"
	bucket "postos/pkg/s3"
)

type ContainerDI struct {
	Config          Config
	PostosClient    *httpclient.Client
	OsrmClient      *httpclient.Client
	Cache           pkg.Cache
	Bucket          *bucket.Bucket
	Locator         geolocation.Locator
	Geocoder        geolocation.Geocoder
	PasetoMaker     token.Maker
	RepositoryPosto *posto.Repository
	ServicePosto    *posto.Service
	ServiceRoutes   *routes.Service
	LoginRepository *login.Repository
	LoginService    *login.Service
	LoginHandler    *login.Handler
	ServiceAdmin    *admin.Service
	HandlerAdmin    *admin.Handler
	Hub             *ws.Hub
	WsHandler       *ws.Handler
	Registry        *mapa.Registry
	HandlerMapa     *mapa.Handler
}

func NewContainerDI(ctx context.Context, config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.buildPkg(ctx)
	container.buildRepository()
	container.buildService()
	container.buildHandler(ctx)
	return container
}

func (c *ContainerDI) buildPkg(ctx context.Context) {
	c.PostosClient = httpclient.New(httpclient.Options{BaseURL: c.Config.PostosApiUrl, Timeout: c.Config.HTTPTimeout})
	c.OsrmClient = httpclient.New(httpclient.Options{BaseURL: c.Config.OsrmUrl, Timeout: c.Config.HTTPTimeout})

	if c.Config.RedisUrl != "" {
		rdb, err := pkg.InitRedis(ctx, c.Config.RedisUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Erro ao conectar ao Redis")
		}
		c.Cache = rdb
	} else {
		log.Warn().Msg("REDIS_URL não definido, sessões administrativas ficam em memória")
		c.Cache = pkg.NewMemoryCache(c.Config.SessionCacheSize, c.Config.SessionTTL)
	}

	if c.Config.AwsBucketName != "" {
		b, err := bucket.NewBucket(c.Config.AwsAccessKeyID, c.Config.AwsSecretAccessKey, c.Config.AwsRegion, c.Config.AwsBucketName)
		if err != nil {
			log.Error().Err(err).Msg("S3 desativado, imagens seguem para a API de postos")
		} else {
			c.Bucket = b
		}
	}

	locator, err := geolocation.NewGoogleLocator(c.Config.GoogleMapsKey)
	if err != nil {
		log.Error().Err(err).Msg("geolocalização pelo servidor desativada")
		locator = geolocation.Unsupported
	}
	c.Locator = locator

	geocoder, err := geolocation.NewGoogleGeocoder(c.Config.GoogleMapsKey)
	if err != nil {
		log.Error().Err(err).Msg("geocodificação desativada")
	}
	if geocoder != nil {
		c.Geocoder = geocoder
	}

	maker, err := token.NewPasetoMaker(c.Config.SignatureToken)
	if err != nil {
		log.Fatal().Err(err).Msg("SIGNATURE_STRING inválida")
	}
	c.PasetoMaker = maker
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryPosto = posto.NewPostosRepository(c.PostosClient)
	c.LoginRepository = login.NewRepository(c.Cache)
}

func (c *ContainerDI) buildService() {
	c.ServicePosto = posto.NewPostosService(c.RepositoryPosto)
	c.ServiceRoutes = routes.NewRoutesService(c.OsrmClient, c.Config.OsrmGeometry)
	c.LoginService = login.NewService(c.RepositoryPosto, c.LoginRepository, c.PasetoMaker, c.Config.SessionTTL)

	var images admin.ImageStore
	if c.Bucket != nil {
		images = c.Bucket
	}
	c.ServiceAdmin = admin.NewAdminService(c.RepositoryPosto, c.Geocoder, images)
}

func (c *ContainerDI) buildHandler(ctx context.Context) {
	c.LoginHandler = login.NewHandler(c.LoginService)
	c.HandlerAdmin = admin.NewAdminHandler(c.ServiceAdmin)

	c.Hub = ws.NewHub()
	go c.Hub.Run(ctx)

	registry, err := mapa.NewRegistry(c.Config.MaxPages, func(id uuid.UUID) *mapa.Page {
		return mapa.NewPage(id, c.ServicePosto, c.ServiceRoutes, c.Hub.Renderer(id))
	})
	if err != nil {
		log.Fatal().Err(err).Msg("MAX_PAGES inválido")
	}
	c.Registry = registry
	c.HandlerMapa = mapa.NewMapaHandler(c.Registry, c.Locator)
	c.WsHandler = ws.NewWsHandler(c.Hub, c.Registry)
}

// Close closes every open map page, cancelling their pending requests.
func (c *ContainerDI) Close() {
	c.Registry.Close()
}
