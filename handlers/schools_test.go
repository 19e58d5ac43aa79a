// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campushq/schoolvote/models"
	"github.com/campushq/schoolvote/testutil"
)

func TestCreateCity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDirectoryHandler(db, cfg)

	adminHeaders := map[string]string{"X-Admin-Token": cfg.AdminToken}

	tests := []struct {
		name           string
		headers        map[string]string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid city",
			headers:        adminHeaders,
			requestBody:    models.CreateCityRequest{Name: "Springfield"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate name",
			headers:        adminHeaders,
			requestBody:    models.CreateCityRequest{Name: "Springfield"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing name",
			headers:        adminHeaders,
			requestBody:    models.CreateCityRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong admin token",
			headers:        map[string]string{"X-Admin-Token": "wrong"},
			requestBody:    models.CreateCityRequest{Name: "Shelbyville"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing admin token",
			headers:        nil,
			requestBody:    models.CreateCityRequest{Name: "Shelbyville"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/cities", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			handler.CreateCity(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestListCities(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDirectoryHandler(db, cfg)

	t.Run("empty directory", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/cities", nil, nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Cities []models.City `json:"cities"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Cities) != 0 {
			t.Errorf("Expected 0 cities, got %d", len(resp.Cities))
		}
	})

	testutil.CreateTestCity(t, db, "Springfield")
	testutil.CreateTestCity(t, db, "Shelbyville")

	t.Run("sorted by name", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/cities", nil, nil)
		w := httptest.NewRecorder()

		handler.ListCities(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Cities []models.City `json:"cities"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Cities) != 2 {
			t.Fatalf("Expected 2 cities, got %d", len(resp.Cities))
		}
		if resp.Cities[0].Name != "Shelbyville" || resp.Cities[1].Name != "Springfield" {
			t.Error("Expected cities sorted by name")
		}
	})
}

func TestCreateSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDirectoryHandler(db, cfg)

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	adminHeaders := map[string]string{"X-Admin-Token": cfg.AdminToken}

	tests := []struct {
		name           string
		headers        map[string]string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:    "valid school",
			headers: adminHeaders,
			requestBody: models.CreateSchoolRequest{
				CityID: cityID,
				Name:   "Springfield High",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "unknown city",
			headers: adminHeaders,
			requestBody: models.CreateSchoolRequest{
				CityID: "nonexistent",
				Name:   "Ghost School",
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing name",
			headers:        adminHeaders,
			requestBody:    models.CreateSchoolRequest{CityID: cityID},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing city",
			headers:        adminHeaders,
			requestBody:    models.CreateSchoolRequest{Name: "Nowhere High"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "wrong admin token",
			headers: map[string]string{"X-Admin-Token": "wrong"},
			requestBody: models.CreateSchoolRequest{
				CityID: cityID,
				Name:   "Springfield High",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/schools", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			handler.CreateSchool(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestListSchools(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDirectoryHandler(db, cfg)

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	otherCityID := testutil.CreateTestCity(t, db, "Shelbyville")
	testutil.CreateTestSchool(t, db, cityID, "Springfield High")
	testutil.CreateTestSchool(t, db, cityID, "Springfield Elementary")
	testutil.CreateTestSchool(t, db, otherCityID, "Shelbyville High")

	t.Run("filtered by city", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/schools?city_id="+cityID, nil, nil)
		w := httptest.NewRecorder()

		handler.ListSchools(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Schools []models.School `json:"schools"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Schools) != 2 {
			t.Errorf("Expected 2 schools, got %d", len(resp.Schools))
		}
		for _, s := range resp.Schools {
			if s.CityID != cityID {
				t.Errorf("School %s belongs to wrong city %s", s.Name, s.CityID)
			}
		}
	})

	t.Run("no city filter", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/schools", nil, nil)
		w := httptest.NewRecorder()

		handler.ListSchools(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Schools []models.School `json:"schools"`
		}
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Schools) != 0 {
			t.Errorf("Expected empty list without a city filter, got %d", len(resp.Schools))
		}
	})
}

func TestGetSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDirectoryHandler(db, cfg)

	cityID := testutil.CreateTestCity(t, db, "Springfield")
	schoolID := testutil.CreateTestSchool(t, db, cityID, "Springfield High")

	t.Run("found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/schools/"+schoolID, nil, nil)
		req.SetPathValue("id", schoolID)
		w := httptest.NewRecorder()

		handler.GetSchool(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var school models.School
		testutil.AssertJSON(t, w, &school)
		if school.ID != schoolID {
			t.Errorf("Expected school %s, got %s", schoolID, school.ID)
		}
		if school.AdminUserID != nil {
			t.Error("Expected new school to have no admin")
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/schools/nonexistent", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetSchool(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
