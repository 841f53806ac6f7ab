//go:build e2e

package inventory_test

import (
	"net/http"
	"testing"

	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/dbtest"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/common/httptest"
	"github.com/ilya-afanasev/avr-lab-reservation/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reconcileURL = "/api/inventory/reconcile"
	resourcesURL = "/api/resources"
)

type InventorySuite struct {
	e2e.SharedSuite
}

func (s *InventorySuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestInventorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(InventorySuite))
}

func (s *InventorySuite) reconcile(entries ...reqdto.InventoryEntryRequest) resdto.ReconcileResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, reqdto.ReconcileRequest{Resources: entries})
	var got resdto.ReconcileResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

func (s *InventorySuite) listResources(query string) []resdto.ResourceResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, resourcesURL+query, nil)
	var got []resdto.ResourceResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

var (
	board = reqdto.InventoryEntryRequest{ID: 1, Type: "MCU", Path: "/dev/ttyUSB0", Model: "atmega2560"}
	sim   = reqdto.InventoryEntryRequest{ID: 2, Type: "simulator"}
)

func (s *InventorySuite) TestReconcile() {
	s.Run("Normal case: inventory is created then left unchanged", func() {
		t := s.T()

		require.Equal(t, resdto.ReconcileResponse{Created: 2}, s.reconcile(board, sim))
		require.Equal(t, resdto.ReconcileResponse{Unchanged: 2}, s.reconcile(board, sim))

		want := []resdto.ResourceResponse{
			{ID: 1, Name: "atmega2560-1", Model: &board.Model, Path: &board.Path, Type: "mcu", Available: true},
			{ID: 2, Name: "simulator-2", Type: "simulator", Available: true},
		}
		opts := cmpopts.IgnoreFields(resdto.ResourceResponse{}, "CreatedAt", "UpdatedAt")
		if diff := cmp.Diff(want, s.listResources(""), opts); diff != "" {
			t.Errorf("resources mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: dropped resources become unavailable", func() {
		t := s.T()
		s.reconcile(board, sim)

		got := s.reconcile(sim)
		require.Equal(t, resdto.ReconcileResponse{Unchanged: 1, MarkedUnavailable: 1}, got)

		unavailable := s.listResources("?available=false")
		require.Len(t, unavailable, 1)
		require.Equal(t, int64(1), unavailable[0].ID)
	})

	s.Run("Normal case: a board replaced by one of the same model", func() {
		t := s.T()
		uno := func(id int64) reqdto.InventoryEntryRequest {
			return reqdto.InventoryEntryRequest{ID: id, Type: "mcu", Path: "/dev/ttyACM0", Model: "uno"}
		}
		s.reconcile(uno(1))

		got := s.reconcile(uno(2))

		require.Equal(t, resdto.ReconcileResponse{Created: 1, MarkedUnavailable: 1}, got)
		available := s.listResources("?available=true")
		require.Len(t, available, 1)
		require.Equal(t, "uno-2", available[0].Name)
	})

	s.Run("Normal case: identical boards side by side", func() {
		t := s.T()
		first := reqdto.InventoryEntryRequest{ID: 3, Type: "mcu", Path: "/dev/ttyACM0", Model: "uno"}
		second := reqdto.InventoryEntryRequest{ID: 4, Type: "mcu", Path: "/dev/ttyACM1", Model: "uno"}

		require.Equal(t, resdto.ReconcileResponse{Created: 2}, s.reconcile(first, second))
		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "resources"))
	})

	s.Run("Error case: one bad entry rejects the whole inventory", func() {
		t := s.T()
		broken := reqdto.InventoryEntryRequest{ID: 3, Type: "mcu", Model: "atmega328p"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL,
			reqdto.ReconcileRequest{Resources: []reqdto.InventoryEntryRequest{board, broken}})

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "requires path")
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "resources"))
	})

	s.Run("Error case: unsupported type", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL,
			reqdto.ReconcileRequest{Resources: []reqdto.InventoryEntryRequest{{ID: 5, Type: "fpga"}}})

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "unsupported type")
	})

	s.Run("Error case: configured inventory file is missing", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, nil)

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Reconcile failed")
	})
}
