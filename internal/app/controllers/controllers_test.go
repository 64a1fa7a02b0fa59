package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	"github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/middleware"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterJSONFieldNames()
}

// memOfferings applies the eligibility predicate in memory
type memOfferings struct {
	rows  []models.Offering
	err   error
	calls int
}

func (m *memOfferings) FindEligible(_ context.Context, f repositories.EligibilityFilter) ([]models.Offering, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Offering{}
	for _, r := range m.rows {
		if r.AverageCutoff >= f.MinCutoff && r.AverageCutoff <= f.MaxCutoff &&
			r.Community == f.Category && r.BranchName == f.Branch && r.District == f.District {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memOfferings) ListCategories(context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, r := range m.rows {
		if !seen[r.Community] {
			seen[r.Community] = true
			out = append(out, r.Community)
		}
	}
	return out, nil
}

func (m *memOfferings) ListDistricts(context.Context) ([]string, error) {
	return []string{"Chennai"}, m.err
}

func (m *memOfferings) ListBranches(context.Context) ([]string, error) {
	return []string{"CSE", "ECE"}, m.err
}

type memLocations struct {
	rows        []models.CollegeLocation
	districtErr error
	codeErr     error
}

func (m *memLocations) ListAll(context.Context) ([]models.CollegeLocation, error) {
	return m.rows, m.districtErr
}

func (m *memLocations) ListDistricts(context.Context) ([]string, error) {
	if m.districtErr != nil {
		return nil, m.districtErr
	}
	return []string{"Chennai", "Madurai"}, nil
}

func (m *memLocations) ListCodes(context.Context) ([]string, error) {
	if m.codeErr != nil {
		return nil, m.codeErr
	}
	return []string{"1", "2"}, nil
}

type fakeRegistration struct {
	err error
	got services.RegisterInput
}

func (f *fakeRegistration) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 7, Name: in.Name}, nil
}

type fakeReports struct {
	got services.ReportRequest
	err error
}

func (f *fakeReports) Generate(_ context.Context, req services.ReportRequest) (*models.Report, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Report{FileName: "r.pdf", URL: "/uploads/reports/r.pdf", CollegeCount: 1, Deliveries: []models.Delivery{}}, nil
}

var sampleRows = []models.Offering{
	{CollegeName: "X College", BranchName: "CSE", BranchCode: "CS01", Community: "OC", AverageCutoff: 150.5, District: "Chennai"},
	{CollegeName: "Y College", BranchName: "ECE", BranchCode: "EC01", Community: "OC", AverageCutoff: 140.0, District: "Chennai"},
}

func newRouter(offerings *memOfferings, locations *memLocations, reg services.RegistrationService, reports services.ReportService) *gin.Engine {
	eligibility := services.NewEligibilityService(offerings)
	catalog := services.NewCatalogService(offerings, locations)

	r := gin.New()
	pc := NewPredictionController(eligibility)
	cc := NewCatalogController(catalog)
	r.POST("/predict", pc.Predict)
	r.GET("/categories", cc.GetCategories)
	r.GET("/districts", cc.GetDistricts)
	r.GET("/branches", cc.GetBranches)
	r.GET("/all-colleges", cc.GetAllColleges)
	r.GET("/filters", cc.GetFilters)
	if reg != nil {
		r.POST("/register", NewRegistrationController(reg).Register)
	}
	if reports != nil {
		r.POST("/reports", NewReportController(reports).GenerateReport)
	}
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredict_ReturnsMatchingOffering(t *testing.T) {
	r := newRouter(&memOfferings{rows: sampleRows}, &memLocations{}, nil, nil)

	w := do(r, http.MethodPost, "/predict", `{"min_cutoff":140,"max_cutoff":160,"category":"OC","branch":"CSE","district":"Chennai"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []models.Offering{sampleRows[0]}, resp.PredictedColleges)
}

func TestPredict_EmptyResultIsArray(t *testing.T) {
	r := newRouter(&memOfferings{rows: sampleRows}, &memLocations{}, nil, nil)

	w := do(r, http.MethodPost, "/predict", `{"min_cutoff":160,"max_cutoff":140,"category":"OC","branch":"CSE","district":"Chennai"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"predicted_colleges":[]}`, w.Body.String())
}

func TestPredict_ZeroCutoffIsPresent(t *testing.T) {
	offerings := &memOfferings{rows: sampleRows}
	r := newRouter(offerings, &memLocations{}, nil, nil)

	w := do(r, http.MethodPost, "/predict", `{"min_cutoff":0,"max_cutoff":200,"category":"OC","branch":"ECE","district":"Chennai"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, offerings.calls)
}

func TestPredict_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing category", `{"min_cutoff":140,"max_cutoff":160,"branch":"CSE","district":"Chennai"}`, "category"},
		{"empty category", `{"min_cutoff":140,"max_cutoff":160,"category":""}`, "category"},
		{"missing min", `{"max_cutoff":160,"category":"OC"}`, "min_cutoff"},
		{"wrong type", `{"min_cutoff":"high","max_cutoff":160,"category":"OC"}`, "min_cutoff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offerings := &memOfferings{rows: sampleRows}
			r := newRouter(offerings, &memLocations{}, nil, nil)

			w := do(r, http.MethodPost, "/predict", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
			assert.Zero(t, offerings.calls)
		})
	}
}

func TestPredict_MalformedJSON(t *testing.T) {
	r := newRouter(&memOfferings{}, &memLocations{}, nil, nil)

	for _, body := range []string{`{"min_cutoff":`, ``} {
		w := do(r, http.MethodPost, "/predict", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"details":"malformed JSON body"`)
		assert.NotContains(t, w.Body.String(), "EOF")
	}
}

func TestPredict_StoreFailureIsGeneric(t *testing.T) {
	storeErr := apperrors.NewStoreError("find eligible offerings", errors.New("pq: password authentication failed for user admin"))
	r := newRouter(&memOfferings{err: storeErr}, &memLocations{}, nil, nil)

	w := do(r, http.MethodPost, "/predict", `{"min_cutoff":140,"max_cutoff":160,"category":"OC"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "predicted_colleges")
}

func TestCatalogEndpoints(t *testing.T) {
	r := newRouter(&memOfferings{rows: sampleRows}, &memLocations{rows: []models.CollegeLocation{{ID: 1, Code: "1", CollegeName: "X College", CollegeDistrict: "Chennai"}}}, nil, nil)

	w := do(r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":["OC"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/districts", "")
	assert.JSONEq(t, `{"districts":["Chennai"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/branches", "")
	assert.JSONEq(t, `{"branches":["CSE","ECE"]}`, w.Body.String())

	w = do(r, http.MethodGet, "/all-colleges", "")
	assert.JSONEq(t, `{"colleges":[{"id":1,"code":"1","college_name":"X College","college_district":"Chennai"}]}`, w.Body.String())
}

func TestCategories_EmptyTable(t *testing.T) {
	r := newRouter(&memOfferings{}, &memLocations{}, nil, nil)

	w := do(r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":[]}`, w.Body.String())
}

func TestCategories_StoreFailure(t *testing.T) {
	r := newRouter(&memOfferings{err: apperrors.NewStoreError("list categories", errors.New("down"))}, &memLocations{}, nil, nil)

	w := do(r, http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestFilters(t *testing.T) {
	storeErr := apperrors.NewStoreError("list college codes", errors.New("relation college_location does not exist"))

	t.Run("all facets", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{}, nil, nil)
		w := do(r, http.MethodGet, "/filters", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"districts":["Chennai","Madurai"],"college_codes":["1","2"]}`, w.Body.String())
	})

	t.Run("one facet fails", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{codeErr: storeErr}, nil, nil)
		w := do(r, http.MethodGet, "/filters", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"districts":["Chennai","Madurai"],"college_codes":[],"error":"failed to load college codes"}`, w.Body.String())
	})

	// Both facets read college_location, so a failure of that whole table is the
	// total-failure case below and answers 500. Partial success (200 with error)
	// covers one facet's query failing while the other resolves.
	t.Run("all facets fail", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{codeErr: storeErr, districtErr: storeErr}, nil, nil)
		w := do(r, http.MethodGet, "/filters", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"districts":[],"college_codes":[],"error":"failed to load districts; failed to load college codes"}`, w.Body.String())
	})
}

func TestRegister(t *testing.T) {
	body := `{"name":"Priya","age":17,"gender":"F","school":"GHSS","dob":"2008-05-14","mobile":"9876543210","email":"priya@example.com"}`

	t.Run("created", func(t *testing.T) {
		reg := &fakeRegistration{}
		r := newRouter(&memOfferings{}, &memLocations{}, reg, nil)

		w := do(r, http.MethodPost, "/register", body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"User registered successfully","id":7}`, w.Body.String())
		assert.Equal(t, "priya@example.com", reg.got.Email)
	})

	t.Run("missing fields", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{}, &fakeRegistration{}, nil)

		w := do(r, http.MethodPost, "/register", `{"name":"Priya"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		fields, ok := resp.Error.Details.([]interface{})
		require.True(t, ok)
		assert.Len(t, fields, 6)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{}, &fakeRegistration{err: apperrors.NewConflictError("email already registered")}, nil)

		w := do(r, http.MethodPost, "/register", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGenerateReport(t *testing.T) {
	body := `{"student":{"name":"Priya","mobile":"9876543210","school":"GHSS"},"query":{"min_cutoff":140,"max_cutoff":160,"category":"OC"},"deliver":{"whatsapp":true}}`

	t.Run("created", func(t *testing.T) {
		reports := &fakeReports{}
		r := newRouter(&memOfferings{}, &memLocations{}, nil, reports)

		w := do(r, http.MethodPost, "/reports", body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"file_name":"r.pdf","report_url":"/uploads/reports/r.pdf","college_count":1,"deliveries":[]}`, w.Body.String())

		assert.Equal(t, "Priya", reports.got.Student.Name)
		assert.Equal(t, "GHSS", reports.got.School)
		assert.True(t, reports.got.WhatsApp)
		assert.False(t, reports.got.Email)
		require.NotNil(t, reports.got.Query.MinCutoff)
		assert.Equal(t, 140.0, *reports.got.Query.MinCutoff)
	})

	t.Run("missing student name", func(t *testing.T) {
		r := newRouter(&memOfferings{}, &memLocations{}, nil, &fakeReports{})

		w := do(r, http.MethodPost, "/reports", `{"student":{},"query":{"min_cutoff":1,"max_cutoff":2,"category":"OC"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
