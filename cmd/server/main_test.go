package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gammageek/wishlist/internal/views"
)

func writeExports(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Group_export.csv": "id,name,description,invite_code,created_by\n" +
			"g1,Family,,ABC123,alice@x.com\n",
		"GroupMembership_export.csv": "group_id,user_email,role\n" +
			"g1,alice@x.com,owner\n" +
			"g1,bob@x.com,member\n",
		"WishlistItem_export.csv": "id,name,description,url,picture_url,price_range,priority,claimed_status,created_by\n" +
			"i1,Scarf,,,,$25-$50,high,claimed,alice@x.com\n" +
			"i2,Book,,,,Under $25,low,available,bob@x.com\n" +
			",Broken,,,,,,,alice@x.com\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("JWT_SECRET", "test")
	t.Setenv("STORAGE_BACKEND", "memory")

	summaryJSON = false
	summaryDataDir = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	dir := writeExports(t)

	out, err := runCLI(t, "summary", "--email", "alice@x.com", "--data", dir)
	if err != nil {
		t.Fatalf("summary failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"Dashboard for alice <alice@x.com>",
		"Wishlist items: 1",
		"Groups:         1",
		"Items claimed:  1",
		"- Scarf ($25-$50, high)",
		"- Family [ABC123]",
		"Rejected rows: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_JSON(t *testing.T) {
	dir := writeExports(t)

	out, err := runCLI(t, "summary", "--email", "bob@x.com", "--data", dir, "--json")
	if err != nil {
		t.Fatalf("summary failed: %v\n%s", err, out)
	}

	var d views.Dashboard
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !d.DataLoaded || d.MyItemCount != 1 || d.MyGroupCount != 1 || d.ItemsClaimed != 0 {
		t.Errorf("unexpected dashboard: %+v", d)
	}
}

func TestSummary_NoData(t *testing.T) {
	out, err := runCLI(t, "summary", "--email", "alice@x.com", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("summary failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No data loaded.") {
		t.Errorf("expected no-data notice:\n%s", out)
	}
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/wishlist.v1.GroupService/ListMyGroups", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("preflight should not reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Errorf("Authorization not allowed: %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}
