//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/api"
	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/ptr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/httptest"
	commandsmock "github.com/ilya-afanasev/avr-lab-reservation/tests/mock/commands"
	queriesmock "github.com/ilya-afanasev/avr-lab-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockUserCommands
	mockQueries  *queriesmock.MockUserQueries
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockUserCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	handler := api.NewUserHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/users", handler.Create)
	s.router.GET("/users", handler.List)
	s.router.GET("/users/:id", handler.Get)
	s.router.PUT("/users/:id", handler.Update)
	s.router.DELETE("/users/:id", handler.Delete)
}

func (s *UserHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func devView() *queries.UserView {
	return &queries.UserView{ID: 3, Email: ptr.To("dev@example.com"), ExternalID: ptr.To(int64(7))}
}

func (s *UserHandlerTestSuite) TestCreate() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.UserInput{
			Email: ptr.To("dev@example.com"), ExternalID: ptr.To(int64(7)),
		}).Return(int64(3), nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(3)).Return(devView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users",
			reqdto.UserRequest{Email: ptr.To("dev@example.com"), ExternalID: ptr.To(int64(7))})

		var got resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(int64(3), got.ID)
		s.Equal(ptr.To("dev@example.com"), got.Email)
	})

	s.Run("error: malformed email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users",
			reqdto.UserRequest{Email: ptr.To("not-an-email")})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: email taken", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(int64(0), errs.Newf(errs.KindPersistenceConflict, "Change conflicts with stored data")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/users",
			reqdto.UserRequest{Email: ptr.To("dev@example.com")})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Change conflicts with stored data")
	})
}

func (s *UserHandlerTestSuite) TestUpdate() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(3), commands.UserInput{ExternalID: ptr.To(int64(7))}).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(3)).Return(devView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/users/3",
			reqdto.UserRequest{ExternalID: ptr.To(int64(7))})

		var got resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(ptr.To(int64(7)), got.ExternalID)
	})

	s.Run("error: unknown user", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(9), gomock.Any()).
			Return(errs.Newf(errs.KindNotFound, "User 9 not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/users/9",
			reqdto.UserRequest{Email: ptr.To("dev@example.com")})

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User 9 not found")
	})
}

func (s *UserHandlerTestSuite) TestDelete() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/users/3", nil)

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/users/zero", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *UserHandlerTestSuite) TestList() {
	s.Run("success: filters are forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.UserFilter{Email: "dev@example.com"}).
			Return([]*queries.UserView{devView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?email=Dev@Example.com", nil)

		var got []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Require().Len(got, 1)
		s.Equal(int64(3), got[0].ID)
	})

	s.Run("success: id alone returns the single user", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(3)).Return(devView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?id=3", nil)

		var got resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(int64(3), got.ID)
	})

	s.Run("error: id of a missing user", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(9)).
			Return(nil, errs.Newf(errs.KindNotFound, "User 9 not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?id=9", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User 9 not found")
	})

	s.Run("error: malformed external id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users?external_id=x", nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}
