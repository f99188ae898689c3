// Package loader reads the Group, GroupMembership and WishlistItem CSV exports
// into a models.Dataset, rejecting malformed rows at the boundary.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/gammageek/wishlist/internal/models"
)

// ErrNoData is returned when the directory does not hold all three exports.
var ErrNoData = errors.New("no data loaded")

// File name markers. A file matches when its name contains the marker.
const (
	GroupMarker      = "Group_export"
	MembershipMarker = "GroupMembership_export"
	ItemMarker       = "WishlistItem_export"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RowError describes a quarantined row.
type RowError struct {
	File   string `json:"file"`
	Row    int    `json:"row"` // 1-based, header excluded
	Reason string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("%s row %d: %s", e.File, e.Row, e.Reason)
}

// Report summarizes a load.
type Report struct {
	Groups      int        `json:"groups"`
	Memberships int        `json:"memberships"`
	Items       int        `json:"items"`
	Rejected    []RowError `json:"rejected,omitempty"`
}

// LoadDir loads the three exports found in dir.
// It returns ErrNoData (wrapped) if dir cannot be read or any export is missing.
func LoadDir(ctx context.Context, dir string) (*models.Dataset, *Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	files := make(map[string]string, 3)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		for _, marker := range []string{GroupMarker, MembershipMarker, ItemMarker} {
			if _, found := files[marker]; !found && strings.Contains(name, marker) {
				files[marker] = filepath.Join(dir, name)
			}
		}
	}

	var missing []string
	for _, marker := range []string{GroupMarker, MembershipMarker, ItemMarker} {
		if _, found := files[marker]; !found {
			missing = append(missing, marker)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: missing %s in %s", ErrNoData, strings.Join(missing, ", "), dir)
	}

	return LoadFiles(ctx, files[GroupMarker], files[MembershipMarker], files[ItemMarker])
}

// LoadFiles loads the three exports from explicit paths.
func LoadFiles(ctx context.Context, groupsPath, membershipsPath, itemsPath string) (*models.Dataset, *Report, error) {
	data := &models.Dataset{}
	report := &Report{}

	var groups []*models.Group
	if err := readCSV(ctx, groupsPath, &groups); err != nil {
		return nil, nil, err
	}
	data.Groups, report.Rejected = validateGroups(filepath.Base(groupsPath), groups, report.Rejected)

	var memberships []*models.Membership
	if err := readCSV(ctx, membershipsPath, &memberships); err != nil {
		return nil, nil, err
	}
	data.Memberships, report.Rejected = validateMemberships(filepath.Base(membershipsPath), memberships, report.Rejected)

	var items []*models.WishlistItem
	if err := readCSV(ctx, itemsPath, &items); err != nil {
		return nil, nil, err
	}
	data.Items, report.Rejected = validateItems(filepath.Base(itemsPath), items, report.Rejected)

	report.Groups = len(data.Groups)
	report.Memberships = len(data.Memberships)
	report.Items = len(data.Items)

	for _, r := range report.Rejected {
		slog.Warn("Rejected import row", "file", r.File, "row", r.Row, "reason", r.Reason)
	}

	return data, report, nil
}

func readCSV(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	// Rows with too few or too many fields are kept: missing trailing
	// columns read as empty and are left to the row validators, extra
	// columns are dropped. Stray quotes inside a field are taken literally.
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if err := gocsv.UnmarshalCSV(r, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func validateGroups(file string, rows []*models.Group, rejected []RowError) ([]models.Group, []RowError) {
	seen := make(map[string]bool, len(rows))
	groups := make([]models.Group, 0, len(rows))
	for i, g := range rows {
		switch {
		case g.ID == "":
			rejected = append(rejected, RowError{File: file, Row: i + 1, Reason: "missing id"})
		case seen[g.ID]:
			rejected = append(rejected, RowError{File: file, Row: i + 1, Reason: fmt.Sprintf("duplicate id %q", g.ID)})
		default:
			seen[g.ID] = true
			groups = append(groups, *g)
		}
	}
	return groups, rejected
}

func validateMemberships(file string, rows []*models.Membership, rejected []RowError) ([]models.Membership, []RowError) {
	memberships := make([]models.Membership, 0, len(rows))
	for i, m := range rows {
		switch {
		case m.GroupID == "":
			rejected = append(rejected, RowError{File: file, Row: i + 1, Reason: "missing group_id"})
		case m.UserEmail == "":
			rejected = append(rejected, RowError{File: file, Row: i + 1, Reason: "missing user_email"})
		default:
			memberships = append(memberships, *m)
		}
	}
	return memberships, rejected
}

func validateItems(file string, rows []*models.WishlistItem, rejected []RowError) ([]models.WishlistItem, []RowError) {
	seen := make(map[string]bool, len(rows))
	items := make([]models.WishlistItem, 0, len(rows))
	for i, item := range rows {
		reason := ""
		switch {
		case item.ID == "":
			reason = "missing id"
		case seen[item.ID]:
			reason = fmt.Sprintf("duplicate id %q", item.ID)
		case item.CreatedBy == "":
			reason = "missing created_by"
		case item.PriceRange != "" && models.ValidatePriceRange(item.PriceRange) != nil:
			reason = models.ValidatePriceRange(item.PriceRange).Error()
		case item.Priority != "" && models.ValidatePriority(item.Priority) != nil:
			reason = models.ValidatePriority(item.Priority).Error()
		}
		if reason != "" {
			rejected = append(rejected, RowError{File: file, Row: i + 1, Reason: reason})
			continue
		}

		seen[item.ID] = true
		if item.ClaimedStatus == "" {
			item.ClaimedStatus = models.ClaimAvailable
		}
		items = append(items, *item)
	}
	return items, rejected
}
