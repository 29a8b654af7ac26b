package service

import (
	"testing"

	"github.com/stitchesx/stitchesx/internal/domain/template"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type TemplateServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TemplateService
}

func TestTemplateService(t *testing.T) {
	suite.Run(t, new(TemplateServiceSuite))
}

func (s *TemplateServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTemplateService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		InvoiceRepo:   s.GetStores().InvoiceRepo,
		TemplateRepo:  s.GetStores().TemplateRepo,
		AnalyticsRepo: s.GetStores().AnalyticsRepo,
		SettingsRepo:  s.GetStores().SettingsRepo,
		ProfileRepo:   s.GetStores().ProfileRepo,
	})
}

func (s *TemplateServiceSuite) saveTemplate(name string) *template.Template {
	saved, err := s.service.SaveTemplate(s.GetContext(), &template.Template{
		Name: name,
		TemplateData: map[string]any{
			"accentColor": "#2563eb",
		},
	})
	s.Require().NoError(err)
	return saved
}

func (s *TemplateServiceSuite) TestSaveTemplateRequiresName() {
	_, err := s.service.SaveTemplate(s.GetContext(), &template.Template{})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TemplateServiceSuite) TestSaveAndGetTemplate() {
	saved := s.saveTemplate("Consulting")

	got, err := s.service.GetTemplate(s.GetContext(), saved.ID)
	s.Require().NoError(err)
	s.Equal("Consulting", got.Name)
	s.Equal("#2563eb", got.TemplateData["accentColor"])
}

func (s *TemplateServiceSuite) TestGetDefaultTemplateWhenNoneSet() {
	s.saveTemplate("Consulting")

	got, err := s.service.GetDefaultTemplate(s.GetContext())
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *TemplateServiceSuite) TestSetDefaultTemplateKeepsSingleDefault() {
	first := s.saveTemplate("Consulting")
	second := s.saveTemplate("Retainer")

	s.Require().NoError(s.service.SetDefaultTemplate(s.GetContext(), first.ID))
	s.Require().NoError(s.service.SetDefaultTemplate(s.GetContext(), second.ID))

	all, err := s.service.ListTemplates(s.GetContext())
	s.Require().NoError(err)

	defaults := 0
	for _, tmpl := range all {
		if tmpl.IsDefault {
			defaults++
			s.Equal(second.ID, tmpl.ID)
		}
	}
	s.Equal(1, defaults)

	got, err := s.service.GetDefaultTemplate(s.GetContext())
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(second.ID, got.ID)
}

func (s *TemplateServiceSuite) TestSetDefaultTemplateUnknownID() {
	err := s.service.SetDefaultTemplate(s.GetContext(), "tmpl_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *TemplateServiceSuite) TestDeleteTemplate() {
	saved := s.saveTemplate("Consulting")

	s.Require().NoError(s.service.DeleteTemplate(s.GetContext(), saved.ID))

	_, err := s.service.GetTemplate(s.GetContext(), saved.ID)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}
