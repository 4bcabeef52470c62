package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/apiutil"
	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
	"github.com/Aidin1998/apihub/internal/dataset"
	"github.com/Aidin1998/apihub/internal/generator"
	"github.com/Aidin1998/apihub/internal/geo"
	"github.com/Aidin1998/apihub/internal/middleware/ratelimit"
	"github.com/Aidin1998/apihub/internal/shortener"
	"github.com/Aidin1998/apihub/internal/upstream"
)

// Deps are the components handlers are served from. Nil fields are filled
// with in-process defaults by NewServer.
type Deps struct {
	Datasets  *dataset.Datasets
	Generator *generator.Generator
	Timezones *geo.TimezoneIndex
	Upstream  *upstream.Client
	Shortener *shortener.Service

	// RateLimitStore holds limiter counters; nil means in memory.
	RateLimitStore limiter.Store
	Now            func() time.Time
}

// Server represents the API server
type Server struct {
	router *gin.Engine
	logger *zap.Logger
	cfg    *config.Config

	data      *dataset.Datasets
	gen       *generator.Generator
	timezones *geo.TimezoneIndex
	upstream  *upstream.Client
	shortener *shortener.Service
	now       func() time.Time

	rateLimiter gin.HandlerFunc
}

// NewServer creates a new API server with its routes registered
func NewServer(logger *zap.Logger, cfg *config.Config, deps Deps) *Server {
	if deps.Datasets == nil {
		deps.Datasets = &dataset.Datasets{}
	}
	if deps.Generator == nil {
		deps.Generator = generator.New(deps.Datasets)
	}
	if deps.Timezones == nil {
		deps.Timezones = geo.NewTimezoneIndex()
	}
	if deps.Upstream == nil {
		deps.Upstream = upstream.NewClient(cfg.Upstream, logger)
	}
	if deps.Shortener == nil {
		deps.Shortener = shortener.NewService(shortener.NewMemoryStore(), cfg.Shortener, logger)
	}
	if deps.RateLimitStore == nil {
		deps.RateLimitStore = ratelimit.NewMemoryStore()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	server := &Server{
		logger:    logger,
		cfg:       cfg,
		data:      deps.Datasets,
		gen:       deps.Generator,
		timezones: deps.Timezones,
		upstream:  deps.Upstream,
		shortener: deps.Shortener,
		now:       deps.Now,
	}

	apiutil.UseJSONFieldNames()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Error("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", apiutil.TraceIDHeader},
		ExposeHeaders: []string{"Content-Length", apiutil.TraceIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowsAnyOrigin(cfg.CORS.AllowOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	router.Use(apiutil.TraceMiddleware())
	router.Use(apiutil.MetricsMiddleware())
	router.Use(apiutil.ErrorMiddleware(logger))
	router.Use(apiutil.BodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	server.rateLimiter = newRateLimiter(cfg.RateLimit, deps.RateLimitStore, logger)
	server.router = router
	server.registerRoutes()
	return server
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}

// newRateLimiter returns the per-client-IP limiter, or a pass-through
// handler when the limit cannot be built.
func newRateLimiter(cfg config.RateLimitConfig, store limiter.Store, logger *zap.Logger) gin.HandlerFunc {
	mw, err := ratelimit.Middleware(cfg, store)
	if err != nil {
		// Config validation already rejects bad rates.
		logger.Error("Invalid rate limit, limiter disabled", zap.String("rate", cfg.Rate), zap.Error(err))
		return func(c *gin.Context) { c.Next() }
	}
	return mw
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Handler exposes the router as a plain http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/", s.docsPage)
	s.router.GET("/openapi.yaml", s.openAPISpec)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	text := s.router.Group("/text", s.rateLimiter)
	{
		text.POST("/case-converter", s.convertCase)
		text.POST("/string-reverser", s.reverseString)
		text.POST("/word-counter", s.countWords)
		text.POST("/slug-generator", s.generateSlug)
		text.GET("/lorem-ipsum", s.loremIpsum)
		text.POST("/json-pretty-printer", s.prettyPrintJSON)
		text.POST("/csv-to-json", s.csvToJSON)
		text.POST("/json-to-csv", s.jsonToCSV)
		text.POST("/markdown-to-html", s.markdownToHTML)
		text.POST("/yaml-to-json", s.yamlToJSON)
		text.POST("/json-to-yaml", s.jsonToYAML)
		text.POST("/hash", s.hashText)
		text.POST("/base64/encode", s.base64Encode)
		text.POST("/base64/decode", s.base64Decode)
	}

	fun := s.router.Group("/fun", s.rateLimiter)
	{
		fun.GET("/quote/famous", s.famousQuote)
		fun.GET("/quote/kanye", s.kanyeQuote)
		fun.GET("/joke/bad", s.badJoke)
		fun.GET("/joke/chuck-norris", s.chuckNorrisJoke)
		fun.GET("/fact", s.animalFact)
		fun.GET("/random/color-hex", s.randomHexColor)
		fun.GET("/random/emoji", s.randomEmoji)
		fun.GET("/random/yes-no", s.randomYesNo)
		fun.GET("/random/name", s.randomName)
		fun.GET("/random/password", s.randomPassword)
		fun.GET("/random/number", s.randomNumber)
		fun.GET("/magic-8-ball", s.magic8Ball)
		fun.GET("/coin-flipper", s.flipCoin)
		fun.GET("/dice-roller", s.rollDice)
	}

	dev := s.router.Group("/dev", s.rateLimiter)
	{
		dev.GET("/user-agent", s.parseUserAgent)
		dev.GET("/ip-info", s.ipInfo)
		dev.GET("/http-status", s.httpStatus)
		dev.GET("/uuid", s.generateUUID)
		dev.POST("/unit-converter", s.convertUnit)
		dev.POST("/timestamp-converter", s.convertTimestamp)
		dev.POST("/calculator", s.calculate)
		dev.POST("/jwt/decode", s.decodeJWT)
		dev.GET("/totp/generate", s.generateTOTP)
		dev.POST("/totp/verify", s.verifyTOTP)
		dev.POST("/bcrypt/hash", s.bcryptHash)
		dev.POST("/bcrypt/verify", s.bcryptVerify)
		dev.POST("/url-shortener/create", s.createShortURL)
		dev.GET("/url-shortener/go/:code", s.redirectShortURL)
	}

	data := s.router.Group("/data", s.rateLimiter)
	{
		data.GET("/country-info", s.countryInfo)
		data.GET("/timezones", s.listTimezones)
		data.GET("/time/convert", s.convertTime)
		data.GET("/holidays", s.publicHolidays)
	}

	s.router.NoRoute(func(c *gin.Context) {
		_ = c.Error(errors.NotFound.Explain("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
	})
}

// bindJSON binds the request body into req, recording a validation error on
// failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(apiutil.BindError(err))
		return false
	}
	return true
}

// bindQuery binds query parameters into req, recording a validation error on
// failure.
func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		_ = c.Error(apiutil.BindError(err))
		return false
	}
	return true
}

// fail records err for the error middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
