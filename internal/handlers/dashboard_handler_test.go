package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"budget-explorer/internal/dto"
	"budget-explorer/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type DashboardHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	repo    *fakeSnapshotRepo
	metrics *nopMetrics
	handler *DashboardHandler
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.repo = newFakeSnapshotRepo()
	s.repo.records[2023] = testRecords()
	s.repo.records[2024] = testRecords()
	s.metrics = newNopMetrics()
	s.handler = NewDashboardHandler(s.repo, services.NewAggregationService(), services.NewVariationRanker(), s.metrics)
}

func (s *DashboardHandlerTestSuite) breakdownContext(year, dimension string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/breakdown/"+year+"?dimension="+dimension, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/breakdown/:year")
	c.SetParamNames("year")
	c.SetParamValues(year)
	return c, rec
}

func (s *DashboardHandlerTestSuite) TestGetBreakdown_Success() {
	c, rec := s.breakdownContext("2024", "thematique")

	err := s.handler.GetBreakdown(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data dto.BreakdownResponse `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Equal(2024, response.Data.Year)
	s.Equal("thematique", response.Data.Dimension)
	s.Require().Len(response.Data.Groups, 2)

	// Sport (300) outranks Culture (100 + 50).
	s.Equal("Sport", response.Data.Groups[0].Key)
	s.True(response.Data.Groups[0].Total.Equal(dec(300)))
	s.Equal("Culture", response.Data.Groups[1].Key)
	s.True(response.Data.Groups[1].Total.Equal(dec(150)))
	s.Equal(2, response.Data.Groups[1].Count)

	s.Equal(1, s.metrics.counters["breakdown.requested"])
}

func (s *DashboardHandlerTestSuite) TestGetBreakdown_InvalidDimension() {
	c, rec := s.breakdownContext("2024", "couleur")

	err := s.handler.GetBreakdown(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_006", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetBreakdown_MissingDimension() {
	c, _ := s.breakdownContext("2024", "")

	err := s.handler.GetBreakdown(c)

	// The bound params fail required-field validation and propagate to
	// the central error handler.
	s.Error(err)
}

func (s *DashboardHandlerTestSuite) TestGetBreakdown_InvalidYear() {
	c, rec := s.breakdownContext("abc", "thematique")

	err := s.handler.GetBreakdown(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_005", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetBreakdown_UnknownYear() {
	c, rec := s.breakdownContext("2019", "thematique")

	err := s.handler.GetBreakdown(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("SNAPSHOT_002", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) variationsContext(query string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/variations?"+query, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/variations")
	return c, rec
}

func (s *DashboardHandlerTestSuite) TestGetVariations_IdenticalYears_AllGains() {
	c, rec := s.variationsContext("dimension=thematique&start=2023&end=2024")

	err := s.handler.GetVariations(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response struct {
		Data dto.VariationResponse `json:"data"`
	}
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Equal(2023, response.Data.StartYear)
	s.Equal(2024, response.Data.EndYear)
	s.Require().Len(response.Data.Rows, 2)
	for _, row := range response.Data.Rows {
		s.True(row.Delta.IsZero())
	}
	s.Equal(1, s.metrics.counters["variation.requested"])
}

func (s *DashboardHandlerTestSuite) TestGetVariations_MissingParams() {
	c, _ := s.variationsContext("dimension=thematique")

	err := s.handler.GetVariations(c)

	// Validation errors propagate to the central error handler.
	s.Error(err)
}

func (s *DashboardHandlerTestSuite) TestGetVariations_InvalidDimension() {
	c, rec := s.variationsContext("dimension=couleur&start=2023&end=2024")

	err := s.handler.GetVariations(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_006", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetVariations_UnknownYear() {
	c, rec := s.variationsContext("dimension=thematique&start=2019&end=2024")

	err := s.handler.GetVariations(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
}
