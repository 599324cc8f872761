package inventory

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

const changeHistorySheet = "Change History"

// UpsertHost writes host into the layout's sheet of the workbook at path.
// An existing row with the same hostname has its non-empty fields updated;
// otherwise a row is appended. It reports whether a row was created.
func UpsertHost(path string, layout Layout, host HostConfig) (bool, error) {
	if strings.TrimSpace(host.Hostname) == "" {
		return false, fmt.Errorf("hostname is required")
	}
	if host.IP != "" && ipv4Pattern.FindString(host.IP) == "" {
		return false, fmt.Errorf("invalid IP address: %s", host.IP)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Named("inventory").Warnw("failed to close workbook", "path", path, "error", err)
		}
	}()

	if !slices.Contains(f.GetSheetList(), layout.Sheet) {
		return false, srvErrors.NewConfigurationError("sheet '%s' not found in %s", layout.Sheet, path)
	}

	rows, err := f.GetRows(layout.Sheet)
	if err != nil {
		return false, fmt.Errorf("failed to read sheet %s: %w", layout.Sheet, err)
	}
	if len(rows) == 0 {
		return false, srvErrors.NewConfigurationError("sheet '%s' in %s has no header row", layout.Sheet, path)
	}

	colMap := buildColumnMap(rows[0])
	for _, field := range []Field{FieldHostname, FieldIP} {
		header, _ := layout.Header(field)
		if _, ok := colMap[normalize(header)]; !ok {
			return false, srvErrors.NewMissingColumnError(layout.Sheet, header, rows[0])
		}
	}

	hostHeader, _ := layout.Header(FieldHostname)
	target := len(rows) + 1
	created := true
	for i, row := range rows[1:] {
		if getColumnValue(row, colMap, normalize(hostHeader)) == host.Hostname {
			// sheet rows are 1-based and row 1 is the header
			target = i + 2
			created = false
			break
		}
	}

	for _, c := range layout.Columns {
		v := host.Get(c.Field)
		if v == "" {
			continue
		}
		idx, ok := colMap[normalize(c.Header)]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(idx+1, target)
		if err != nil {
			return false, err
		}
		if err := f.SetCellValue(layout.Sheet, cell, v); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", cell, err)
		}
	}

	if err := f.Save(); err != nil {
		return false, fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	zap.S().Named("inventory").Infow("host saved", "path", path, "hostname", host.Hostname, "created", created)

	return created, nil
}

// Generate writes a new workbook holding the layout's header row followed by
// one row per host, plus a change history sheet.
func Generate(path string, layout Layout, hosts []HostConfig) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Named("inventory").Warnw("failed to close workbook", "path", path, "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", layout.Sheet); err != nil {
		return err
	}

	header := make([]any, 0, len(layout.Columns))
	for _, c := range layout.Columns {
		header = append(header, c.Header)
	}
	if err := f.SetSheetRow(layout.Sheet, "A1", &header); err != nil {
		return err
	}

	for i, h := range hosts {
		row := make([]any, 0, len(layout.Columns))
		for _, c := range layout.Columns {
			row = append(row, h.Get(c.Field))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(layout.Sheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(changeHistorySheet); err != nil {
		return err
	}
	history := []any{"Date", "Version", "Description"}
	if err := f.SetSheetRow(changeHistorySheet, "A1", &history); err != nil {
		return err
	}
	entry := []any{time.Now().Format("2006-01-02"), "1.0", fmt.Sprintf("Generated %d hosts (%s layout)", len(hosts), layout.Name)}
	if err := f.SetSheetRow(changeHistorySheet, "A2", &entry); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	return nil
}

// SampleHosts returns a small set of hosts suitable for a demo workbook.
func SampleHosts() []HostConfig {
	base := HostConfig{
		Subnet:               "10.29.144.0/24",
		Mask:                 "255.255.255.0",
		Gateway:              "10.29.144.4",
		Domain:               "example.lab",
		VLANNumber:           "216",
		VLANDescription:      "QA MGMT TOOLS LAN",
		HostDescription:      "QA Common Services Linux",
		ClusterName:          "qa-cluster-03",
		Type:                 "VM",
		Classification:       "Non-NERC",
		Site:                 "DC1",
		Environment:          "QA",
		TrustLevel:           "TL3",
		OSType:               "RHEL 9.6",
		StorageType:          "VSAN",
		DriveOrVolumeGroup:   "rootvg:",
		FileSystem:           "/dev/mapper/rootvg-rootlv",
		LogicalVolume:        "/",
		StorageAllocationGB:  "20",
		RecommendedStorageGB: "20",
		DrivePurpose:         "OS",
	}

	specs := []struct {
		name, ip, purpose, cpu, ram, storage string
	}{
		{"qa-app-01", "10.29.144.26", "Automation Platform", "16", "64", "0.14"},
		{"qa-app-02", "10.29.144.27", "Automation Platform", "16", "64", "0.14"},
		{"qa-cache-01", "10.29.144.28", "Redis", "4", "4", "0.09"},
		{"qa-db-01", "10.29.144.29", "MongoDB", "16", "128", "1.04"},
		{"qa-gw-01", "10.29.144.30", "Automation Gateway", "8", "32", "0.09"},
	}

	hosts := make([]HostConfig, 0, len(specs))
	for _, s := range specs {
		h := base
		h.Hostname = s.name
		h.CNAME = s.name
		h.IP = s.ip
		h.Purpose = s.purpose
		h.CPUCores = s.cpu
		h.RAM = s.ram
		h.StorageTotalTB = s.storage
		hosts = append(hosts, h)
	}
	return hosts
}
