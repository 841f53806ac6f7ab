//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/api"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/ptr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/builder"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/httptest"
	commandsmock "github.com/ilya-afanasev/avr-lab-reservation/tests/mock/commands"
	queriesmock "github.com/ilya-afanasev/avr-lab-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResourceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockResourceQueries
	mockCommands *commandsmock.MockReservationCommands
}

func (s *ResourceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockResourceQueries(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	handler := api.NewResourceHandler(s.mockQueries, s.mockCommands)

	s.router.GET("/resources", handler.List)
	s.router.GET("/resources/:id/overlaps", handler.Overlaps)
}

func (s *ResourceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResourceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}

func (s *ResourceHandlerTestSuite) TestList() {
	s.Run("success: filters are forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ResourceFilter{Type: "mcu", Available: ptr.To(true)}).
			Return([]*queries.ResourceView{builder.NewResourceView(1, "atmega2560", "mcu", true)}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?type=MCU&available=true", nil)

		var got []resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Require().Len(got, 1)
		s.Equal("atmega2560", got[0].Name)
		s.True(got[0].Available)
	})

	s.Run("error: malformed availability", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?available=maybe", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *ResourceHandlerTestSuite) TestOverlaps() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().CheckOverlap(gomock.Any(), commands.OverlapQuery{
			ResourceID: 2,
			Start:      time.Date(2030, 1, 15, 11, 0, 0, 0, time.UTC),
			End:        time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC),
			ExcludeID:  4,
		}).Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/2/overlaps?start=2030-01-15T11:00:00Z&end=2030-01-15T12:00:00Z&exclude=4", nil)

		var got resdto.OverlapResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(resdto.OverlapResponse{ResourceID: 2, Overlaps: true}, got)
	})

	s.Run("error: missing end", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/2/overlaps?start=2030-01-15T11:00:00Z", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: inverted window", func() {
		s.mockCommands.EXPECT().CheckOverlap(gomock.Any(), gomock.Any()).
			Return(false, errs.Newf(errs.KindInvertedInterval, "Start time should be less than end. Please, check your dates.")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/2/overlaps?start=2030-01-15T12:00:00Z&end=2030-01-15T11:00:00Z", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Start time should be less than end")
	})
}
