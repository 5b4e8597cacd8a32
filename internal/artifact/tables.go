package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/soukayna-thr/Supply-Chain-Traceability-OAR/internal/model"
)

// row gives header-indexed access to one CSV record. Absent columns and
// blank cells read as the zero value rather than failing the record.
type row struct {
	index  map[string]int
	fields []string
}

func (r row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r row) num(col string) int {
	v := strings.TrimSpace(r.str(col))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (r row) float(col string) float64 {
	v := strings.TrimSpace(r.str(col))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// readCSV parses the latest CSV artifact for stem and hands each data row
// to visit.
func (s *Store) readCSV(stem string, visit func(row)) error {
	path, err := s.Latest(stem, ".csv")
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.TrimSpace(col)] = i
	}
	for _, rec := range records[1:] {
		visit(row{index: index, fields: rec})
	}
	return nil
}

// writeTable writes the CSV and companion JSON artifact for one table
// under a shared timestamp.
func (s *Store) writeTable(stem string, header []string, rows [][]string, doc any) error {
	stamp := s.Stamp()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv rows: %w", err)
	}
	if _, err := s.writeFile(stem, ".csv", fmt.Sprintf("%s_%s.csv", stem, stamp), []byte(sb.String())); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json artifact: %w", err)
	}
	_, err = s.writeFile(stem, ".json", fmt.Sprintf("%s_%s.json", stem, stamp), data)
	return err
}

func (s *Store) SaveRawOrganizations(stem string, recs []model.RawOrganization) error {
	header := []string{
		"company_name", "country", "registration_number", "industry",
		"description", "website", "facility_count", "source", "extracted_at",
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.Name, r.Country, r.RegistrationNumber, r.Industry,
			r.Description, r.Website, strconv.Itoa(r.DeclaredSiteCount),
			r.Source, r.ExtractedAt,
		}
	}
	return s.writeTable(stem, header, rows, recs)
}

func (s *Store) LoadRawOrganizations(stem string) ([]model.RawOrganization, error) {
	var out []model.RawOrganization
	err := s.readCSV(stem, func(r row) {
		out = append(out, model.RawOrganization{
			Name:               r.str("company_name"),
			Country:            r.str("country"),
			RegistrationNumber: r.str("registration_number"),
			Industry:           r.str("industry"),
			Description:        r.str("description"),
			Website:            r.str("website"),
			DeclaredSiteCount:  r.num("facility_count"),
			Source:             r.str("source"),
			ExtractedAt:        r.str("extracted_at"),
		})
	})
	return out, err
}

func (s *Store) SaveOrganizations(stem string, recs []model.OrganizationRecord) error {
	header := []string{
		"organization_id", "name", "country", "industry", "description",
		"website", "declared_site_count", "first_seen",
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.OrganizationID, r.Name, r.Country, r.Industry, r.Description,
			r.Website, strconv.Itoa(r.DeclaredSiteCount), r.FirstSeen,
		}
	}
	return s.writeTable(stem, header, rows, recs)
}

func (s *Store) LoadOrganizations(stem string) ([]model.OrganizationRecord, error) {
	var out []model.OrganizationRecord
	err := s.readCSV(stem, func(r row) {
		out = append(out, model.OrganizationRecord{
			OrganizationID:    r.str("organization_id"),
			Name:              r.str("name"),
			Country:           r.str("country"),
			Industry:          r.str("industry"),
			Description:       r.str("description"),
			Website:           r.str("website"),
			DeclaredSiteCount: r.num("declared_site_count"),
			FirstSeen:         r.str("first_seen"),
		})
	})
	return out, err
}

func (s *Store) SaveSites(stem string, recs []model.SiteRecord) error {
	header := []string{"site_id", "name", "country", "created_at"}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.SiteID, r.Name, r.Country, r.CreatedAt}
	}
	return s.writeTable(stem, header, rows, recs)
}

func (s *Store) LoadSites(stem string) ([]model.SiteRecord, error) {
	var out []model.SiteRecord
	err := s.readCSV(stem, func(r row) {
		out = append(out, model.SiteRecord{
			SiteID:    r.str("site_id"),
			Name:      r.str("name"),
			Country:   r.str("country"),
			CreatedAt: r.str("created_at"),
		})
	})
	return out, err
}

func (s *Store) SaveLinks(stem string, recs []model.Link) error {
	header := []string{"organization_id", "site_id"}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.OrganizationID, r.SiteID}
	}
	return s.writeTable(stem, header, rows, recs)
}

func (s *Store) LoadLinks(stem string) ([]model.Link, error) {
	var out []model.Link
	err := s.readCSV(stem, func(r row) {
		out = append(out, model.Link{
			OrganizationID: r.str("organization_id"),
			SiteID:         r.str("site_id"),
		})
	})
	return out, err
}

func (s *Store) SaveDuplicatePairs(stem string, recs []model.DuplicatePair) error {
	if recs == nil {
		// A run with no duplicate pairs still produces a valid artifact.
		recs = []model.DuplicatePair{}
	}
	header := []string{
		"organization_id_1", "name_1", "organization_id_2", "name_2", "similarity",
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.OrganizationID1, r.Name1, r.OrganizationID2, r.Name2,
			strconv.FormatFloat(r.Similarity, 'f', 3, 64),
		}
	}
	return s.writeTable(stem, header, rows, recs)
}

func (s *Store) LoadDuplicatePairs(stem string) ([]model.DuplicatePair, error) {
	var out []model.DuplicatePair
	err := s.readCSV(stem, func(r row) {
		out = append(out, model.DuplicatePair{
			OrganizationID1: r.str("organization_id_1"),
			Name1:           r.str("name_1"),
			OrganizationID2: r.str("organization_id_2"),
			Name2:           r.str("name_2"),
			Similarity:      r.float("similarity"),
		})
	})
	return out, err
}

// SaveDocument writes a JSON-only artifact such as the summary stats or a
// persisted validation report.
func (s *Store) SaveDocument(stem string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json artifact: %w", err)
	}
	_, err = s.writeFile(stem, ".json", fmt.Sprintf("%s_%s.json", stem, s.Stamp()), data)
	return err
}
