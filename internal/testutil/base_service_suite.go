package testutil

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/cache"
	"github.com/stitchesx/stitchesx/internal/config"
	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/domain/profile"
	"github.com/stitchesx/stitchesx/internal/domain/settings"
	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo   invoice.Repository
	TemplateRepo  template.Repository
	AnalyticsRepo analytics.Repository
	SettingsRepo  settings.Repository
	ProfileRepo   profile.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	email  *EmailRecorder
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()
	s.config = config.GetDefaultConfig()
	s.logger = logger.NewNop()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.stores = Stores{
		InvoiceRepo:   NewInMemoryInvoiceStore(),
		TemplateRepo:  NewInMemoryTemplateStore(),
		AnalyticsRepo: NewInMemoryAnalyticsStore(),
		SettingsRepo:  NewInMemorySettingsStore(),
		ProfileRepo:   NewInMemoryProfileStore(),
	}
	s.cache = cache.NewInMemoryCache()
	s.email = NewEmailRecorder()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetEmailRecorder() *EmailRecorder {
	return s.email
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}
