package recommend

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewHandler(newTestService(newFixture(), nil)).RegisterPublicRoutes(app)
	return app
}

func TestGetRecommendationsValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name string
		url  string
		want int
	}{
		{"missing user_id", "/products/recommendations", fiber.StatusBadRequest},
		{"non-numeric user_id", "/products/recommendations?user_id=abc", fiber.StatusBadRequest},
		{"non-positive limit", "/products/recommendations?user_id=1&limit=0", fiber.StatusBadRequest},
		{"non-numeric limit", "/products/recommendations?user_id=1&limit=ten", fiber.StatusBadRequest},
		{"unknown user", "/products/recommendations?user_id=404", fiber.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if res.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, res.StatusCode)
			}
		})
	}
}

func TestGetRecommendationsPayload(t *testing.T) {
	app := newTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/products/recommendations?user_id=1&category=electronics&limit=5", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	var results []Result
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SimilarityScore != 1.00 || results[1].SimilarityScore != 0.50 {
		t.Fatalf("unexpected scores: %v, %v", results[0].SimilarityScore, results[1].SimilarityScore)
	}
}
