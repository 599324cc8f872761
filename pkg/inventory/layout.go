package inventory

import "fmt"

const NotAvailable = "N/A"

type Mode string

const (
	// Strict fails on any missing file, sheet, column, host or IP.
	Strict Mode = "strict"
	// Lenient returns layout defaults instead of failing.
	Lenient Mode = "lenient"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Strict, Lenient:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid lookup mode: %s", s)
	}
}

type Match string

const (
	MatchExact    Match = "exact"
	MatchContains Match = "contains"
)

// Field identifies one attribute of a HostConfig.
type Field string

const (
	FieldHostname             Field = "hostname"
	FieldIP                   Field = "ip"
	FieldSubnet               Field = "subnet"
	FieldMask                 Field = "mask"
	FieldGateway              Field = "gateway"
	FieldCNAME                Field = "cname"
	FieldDomain               Field = "domain"
	FieldVLANNumber           Field = "vlan_number"
	FieldVLANDescription      Field = "vlan_description"
	FieldTeaming              Field = "teaming"
	FieldHostDescription      Field = "host_description"
	FieldClusterName          Field = "cluster_name"
	FieldContainerType        Field = "container_type"
	FieldType                 Field = "type"
	FieldPurpose              Field = "purpose"
	FieldClassification       Field = "classification"
	FieldSite                 Field = "site"
	FieldEnvironment          Field = "environment"
	FieldTrustLevel           Field = "trust_level"
	FieldOSType               Field = "os_type"
	FieldCPUCores             Field = "cpu_cores"
	FieldRAM                  Field = "ram"
	FieldStorageType          Field = "storage_type"
	FieldStorageTotalTB       Field = "storage_total_tb"
	FieldDriveOrVolumeGroup   Field = "drive_or_volume_group"
	FieldFileSystem           Field = "file_system"
	FieldLogicalVolume        Field = "logical_volume"
	FieldStorageAllocationGB  Field = "storage_allocation_gb"
	FieldRecommendedStorageGB Field = "recommended_storage_gb"
	FieldDrivePurpose         Field = "drive_purpose"
	FieldVxRailCluster        Field = "vxrail_cluster"
	FieldVCenterHost          Field = "vcenter_host"
	FieldVMHardwareVersion    Field = "vm_hardware_version"
	FieldVMMemoryReservation  Field = "vm_memory_reservation"
	FieldVMCPUReservation     Field = "vm_cpu_reservation"
)

type Column struct {
	Field  Field
	Header string
}

// Layout describes how host records are laid out in a workbook.
type Layout struct {
	Name  string
	Sheet string
	Match Match
	// Columns maps fields to headers. The FieldHostname column is the lookup key.
	Columns []Column
	// Required headers must exist in strict mode.
	Required []Field
	// Defaults are used by lenient lookups for absent values.
	Defaults map[Field]string
}

func (l Layout) Header(f Field) (string, bool) {
	for _, c := range l.Columns {
		if c.Field == f {
			return c.Header, true
		}
	}
	return "", false
}

// EDSLayout is the engineering design sheet: exact hostnames and the full
// host, storage and virtualization column set.
var EDSLayout = Layout{
	Name:  "eds",
	Sheet: "Server Requirements",
	Match: MatchExact,
	Columns: []Column{
		{FieldHostname, "Server Name"},
		{FieldIP, "IP Assignment"},
		{FieldSubnet, "Subnet"},
		{FieldMask, "Mask"},
		{FieldGateway, "Gateway"},
		{FieldCNAME, "CNAME"},
		{FieldDomain, "DOMAIN"},
		{FieldVLANNumber, "VLAN Number"},
		{FieldVLANDescription, "VLAN ID (Description of VLAN)"},
		{FieldTeaming, "Teaming Bonding (Y/N)"},
		{FieldHostDescription, "Host Description"},
		{FieldClusterName, "Cluster Name"},
		{FieldContainerType, "Container Type"},
		{FieldType, "Type"},
		{FieldPurpose, "Purpose"},
		{FieldClassification, "Classification"},
		{FieldSite, "Site"},
		{FieldEnvironment, "Environment"},
		{FieldTrustLevel, "Trust Level"},
		{FieldOSType, "OS Type"},
		{FieldCPUCores, "Number of CPU Cores (recom)"},
		{FieldRAM, "RAM"},
		{FieldStorageType, "Storage Type"},
		{FieldStorageTotalTB, "Storage Total TB"},
		{FieldDriveOrVolumeGroup, "Drive or Volume Group"},
		{FieldFileSystem, "Files System"},
		{FieldLogicalVolume, "Logical Volume Name/Partition (Mounted On)"},
		{FieldStorageAllocationGB, "Storage Allocation (GB)"},
		{FieldRecommendedStorageGB, "Recommended Storage Allocation (GB)"},
		{FieldDrivePurpose, "Drive Purpose"},
		{FieldVxRailCluster, "VxRail Cluster"},
		{FieldVCenterHost, "vCenter Host"},
		{FieldVMHardwareVersion, "VM Hardware Version"},
		{FieldVMMemoryReservation, "VM Memory Reservation"},
		{FieldVMCPUReservation, "VM CPU Reservation"},
	},
	Required: []Field{FieldHostname, FieldIP},
}

// CBSLayout is the common build sheet: hostnames are matched as substrings
// and network values fall back to site defaults.
var CBSLayout = Layout{
	Name:  "cbs",
	Sheet: "Server Requirements",
	Match: MatchContains,
	Columns: []Column{
		{FieldHostname, "Use PSC Server Naming Convention to provide the Server Name"},
		{FieldIP, "IP Assignments"},
		{FieldSubnet, "Subnet"},
		{FieldMask, "Mask"},
		{FieldGateway, "Gateway"},
		{FieldCNAME, "CNAME"},
		{FieldDomain, "DOMAIN"},
	},
	Required: []Field{FieldHostname},
	Defaults: map[Field]string{
		FieldIP:      "10.26.216.107",
		FieldSubnet:  "10.26.216.0/24",
		FieldMask:    "255.255.255.0",
		FieldGateway: "10.26.216.4",
		FieldDomain:  "gnscet.com",
	},
}

func LayoutByName(name string) (Layout, error) {
	switch name {
	case EDSLayout.Name:
		return EDSLayout, nil
	case CBSLayout.Name:
		return CBSLayout, nil
	default:
		return Layout{}, fmt.Errorf("unknown workbook layout: %s", name)
	}
}
