package inventory

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/infra-validator/pkg/errors"
)

var ipv4Pattern = regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`)

// Book is a loaded inventory sheet. It is read once at Open and is safe for
// concurrent lookups.
type Book struct {
	path    string
	layout  Layout
	mode    Mode
	headers []string
	colMap  map[string]int
	rows    [][]string
}

// Open loads the layout's sheet from the workbook at path. In Lenient mode a
// missing workbook or sheet yields a Book whose lookups return defaults.
func Open(path string, layout Layout, mode Mode) (*Book, error) {
	b := &Book{path: path, layout: layout, mode: mode, colMap: map[string]int{}}
	logger := zap.S().Named("inventory")

	if path == "" {
		return b.degrade(errors.New("workbook path is empty"))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return b.degrade(fmt.Errorf("failed to open workbook %s: %w", path, err))
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("failed to close workbook", "path", path, "error", err)
		}
	}()

	if !slices.Contains(f.GetSheetList(), layout.Sheet) {
		return b.degrade(srvErrors.NewConfigurationError("sheet '%s' not found in %s. Available sheets: %s",
			layout.Sheet, path, strings.Join(f.GetSheetList(), ", ")))
	}

	rows, err := f.GetRows(layout.Sheet)
	if err != nil {
		return b.degrade(fmt.Errorf("failed to read sheet %s: %w", layout.Sheet, err))
	}
	if len(rows) == 0 {
		return b.degrade(srvErrors.NewConfigurationError("sheet '%s' in %s is empty", layout.Sheet, path))
	}

	b.headers = rows[0]
	b.colMap = buildColumnMap(rows[0])
	b.rows = rows[1:]

	for _, field := range layout.Required {
		header, _ := layout.Header(field)
		if _, ok := b.colMap[normalize(header)]; ok {
			continue
		}
		err := srvErrors.NewMissingColumnError(layout.Sheet, header, b.headers)
		if mode == Strict {
			return nil, err
		}
		if field == FieldHostname {
			return b.degrade(err)
		}
		logger.Warnw("required column missing, defaults will be used", "column", header)
	}

	logger.Debugw("inventory loaded", "path", path, "layout", layout.Name, "mode", mode, "rows", len(b.rows))

	return b, nil
}

// degrade returns err in strict mode. In lenient mode it logs err and returns
// an empty Book.
func (b *Book) degrade(err error) (*Book, error) {
	if b.mode == Strict {
		return nil, err
	}
	zap.S().Named("inventory").Warnw("inventory unavailable, using defaults", "path", b.path, "error", err)
	b.rows = nil
	return b, nil
}

func (b *Book) Mode() Mode {
	return b.mode
}

// Hostnames lists the non-empty values of the hostname column in sheet order.
func (b *Book) Hostnames() []string {
	header, _ := b.layout.Header(FieldHostname)
	var names []string
	for _, row := range b.rows {
		if v := getColumnValue(row, b.colMap, normalize(header)); v != "" {
			names = append(names, v)
		}
	}
	return names
}

// Lookup returns the configuration of hostname.
func (b *Book) Lookup(hostname string) (HostConfig, error) {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return HostConfig{}, errors.New("hostname is required")
	}

	row, found := b.find(hostname)
	if !found {
		if b.mode == Strict {
			return HostConfig{}, srvErrors.NewHostnameNotFoundError(hostname, b.Hostnames()...)
		}
		zap.S().Named("inventory").Warnw("hostname not found, returning defaults", "hostname", hostname)
		return b.defaults(hostname), nil
	}

	// Substring layouts can match a longer name than the one searched for.
	hostHeader, _ := b.layout.Header(FieldHostname)
	matched := getColumnValue(row, b.colMap, normalize(hostHeader))

	host := HostConfig{}
	for _, c := range b.layout.Columns {
		v := getColumnValue(row, b.colMap, normalize(c.Header))
		if v == "" {
			v = b.fallback(c.Field, matched)
		}
		host.set(c.Field, v)
	}
	host.Hostname = matched
	b.fillUnmapped(&host)

	header, _ := b.layout.Header(FieldIP)
	ip := ipv4Pattern.FindString(getColumnValue(row, b.colMap, normalize(header)))
	if ip == "" {
		if b.mode == Strict {
			return HostConfig{}, srvErrors.NewConfigurationError("no valid IP address for host '%s' in column '%s'", matched, header)
		}
		ip = b.fallback(FieldIP, matched)
	}
	host.IP = ip

	return host, nil
}

// Close releases the loaded rows.
func (b *Book) Close() error {
	b.rows = nil
	return nil
}

func (b *Book) find(hostname string) ([]string, bool) {
	header, _ := b.layout.Header(FieldHostname)
	key := normalize(header)
	want := strings.ToLower(hostname)

	for _, row := range b.rows {
		v := getColumnValue(row, b.colMap, key)
		if v == "" {
			continue
		}
		switch b.layout.Match {
		case MatchContains:
			if strings.Contains(strings.ToLower(v), want) {
				return row, true
			}
		default:
			if v == hostname {
				return row, true
			}
		}
	}
	return nil, false
}

func (b *Book) defaults(hostname string) HostConfig {
	host := HostConfig{}
	for _, c := range b.layout.Columns {
		host.set(c.Field, b.fallback(c.Field, hostname))
	}
	host.Hostname = hostname
	b.fillUnmapped(&host)
	return host
}

// fallback is the value used when a cell is empty.
func (b *Book) fallback(f Field, hostname string) string {
	if b.mode == Lenient {
		if v, ok := b.layout.Defaults[f]; ok {
			return v
		}
		if f == FieldCNAME {
			return hostname
		}
	}
	return NotAvailable
}

// fillUnmapped marks fields the layout does not carry as N/A.
func (b *Book) fillUnmapped(host *HostConfig) {
	for _, c := range EDSLayout.Columns {
		if _, ok := b.layout.Header(c.Field); !ok {
			host.set(c.Field, NotAvailable)
		}
	}
}

func buildColumnMap(headers []string) map[string]int {
	colMap := make(map[string]int)
	for i, header := range headers {
		key := normalize(header)
		if _, exists := colMap[key]; !exists {
			colMap[key] = i
		}
	}
	return colMap
}

func getColumnValue(row []string, colMap map[string]int, key string) string {
	if idx, exists := colMap[key]; exists && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func normalize(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
