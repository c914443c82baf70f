package plans

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlansHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Plans []struct {
				Name      string `json:"name"`
				IsPopular bool   `json:"is_popular"`
				Prices    []struct {
					Duration int    `json:"duration"`
					Total    string `json:"total"`
					Save     string `json:"save"`
					Terms    struct {
						TotalMonths int `json:"total_months"`
					} `json:"terms"`
				} `json:"prices"`
			} `json:"plans"`
			Countries []struct {
				Name          string `json:"name"`
				Currency      string `json:"currency"`
				PaymentMethod string `json:"payment_method"`
			} `json:"countries"`
			StudentClasses []string `json:"student_classes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	assert.Equal(t, "OK", body.Status)
	require.Len(t, body.Data.Plans, 3)
	pro := body.Data.Plans[1]
	assert.Equal(t, "Professional", pro.Name)
	assert.True(t, pro.IsPopular)
	require.Len(t, pro.Prices, 3)
	assert.Equal(t, 12, pro.Prices[2].Duration)
	assert.Equal(t, "30", pro.Prices[2].Total)
	assert.Equal(t, "6", pro.Prices[2].Save)
	assert.Equal(t, 14, pro.Prices[2].Terms.TotalMonths)

	require.Len(t, body.Data.Countries, 2)
	assert.Equal(t, "MMK", body.Data.Countries[0].Currency)
	assert.Equal(t, "Thai Bank", body.Data.Countries[1].PaymentMethod)
	assert.Contains(t, body.Data.StudentClasses, "Other")
}
