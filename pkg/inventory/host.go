package inventory

// HostConfig is the configuration of one host as recorded in an inventory
// workbook.
type HostConfig struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	IP              string `json:"ip" yaml:"ip"`
	Subnet          string `json:"subnet" yaml:"subnet"`
	Mask            string `json:"mask" yaml:"mask"`
	Gateway         string `json:"gateway" yaml:"gateway"`
	CNAME           string `json:"cname" yaml:"cname"`
	Domain          string `json:"domain" yaml:"domain"`
	VLANNumber      string `json:"vlanNumber" yaml:"vlanNumber"`
	VLANDescription string `json:"vlanDescription" yaml:"vlanDescription"`
	Teaming         string `json:"teaming" yaml:"teaming"`

	HostDescription string `json:"hostDescription" yaml:"hostDescription"`
	ClusterName     string `json:"clusterName" yaml:"clusterName"`
	ContainerType   string `json:"containerType" yaml:"containerType"`
	Type            string `json:"type" yaml:"type"`
	Purpose         string `json:"purpose" yaml:"purpose"`
	Classification  string `json:"classification" yaml:"classification"`
	Site            string `json:"site" yaml:"site"`
	Environment     string `json:"environment" yaml:"environment"`
	TrustLevel      string `json:"trustLevel" yaml:"trustLevel"`
	OSType          string `json:"osType" yaml:"osType"`
	CPUCores        string `json:"cpuCores" yaml:"cpuCores"`
	RAM             string `json:"ram" yaml:"ram"`

	StorageType          string `json:"storageType" yaml:"storageType"`
	StorageTotalTB       string `json:"storageTotalTB" yaml:"storageTotalTB"`
	DriveOrVolumeGroup   string `json:"driveOrVolumeGroup" yaml:"driveOrVolumeGroup"`
	FileSystem           string `json:"fileSystem" yaml:"fileSystem"`
	LogicalVolume        string `json:"logicalVolume" yaml:"logicalVolume"`
	StorageAllocationGB  string `json:"storageAllocationGB" yaml:"storageAllocationGB"`
	RecommendedStorageGB string `json:"recommendedStorageGB" yaml:"recommendedStorageGB"`
	DrivePurpose         string `json:"drivePurpose" yaml:"drivePurpose"`

	VxRailCluster       string `json:"vxrailCluster" yaml:"vxrailCluster"`
	VCenterHost         string `json:"vcenterHost" yaml:"vcenterHost"`
	VMHardwareVersion   string `json:"vmHardwareVersion" yaml:"vmHardwareVersion"`
	VMMemoryReservation string `json:"vmMemoryReservation" yaml:"vmMemoryReservation"`
	VMCPUReservation    string `json:"vmCpuReservation" yaml:"vmCpuReservation"`
}

// Get returns the value of f, or "" when f is not a HostConfig field.
func (h HostConfig) Get(f Field) string {
	if p := h.ref(f); p != nil {
		return *p
	}
	return ""
}

func (h *HostConfig) set(f Field, v string) {
	if p := h.ref(f); p != nil {
		*p = v
	}
}

func (h *HostConfig) ref(f Field) *string {
	switch f {
	case FieldHostname:
		return &h.Hostname
	case FieldIP:
		return &h.IP
	case FieldSubnet:
		return &h.Subnet
	case FieldMask:
		return &h.Mask
	case FieldGateway:
		return &h.Gateway
	case FieldCNAME:
		return &h.CNAME
	case FieldDomain:
		return &h.Domain
	case FieldVLANNumber:
		return &h.VLANNumber
	case FieldVLANDescription:
		return &h.VLANDescription
	case FieldTeaming:
		return &h.Teaming
	case FieldHostDescription:
		return &h.HostDescription
	case FieldClusterName:
		return &h.ClusterName
	case FieldContainerType:
		return &h.ContainerType
	case FieldType:
		return &h.Type
	case FieldPurpose:
		return &h.Purpose
	case FieldClassification:
		return &h.Classification
	case FieldSite:
		return &h.Site
	case FieldEnvironment:
		return &h.Environment
	case FieldTrustLevel:
		return &h.TrustLevel
	case FieldOSType:
		return &h.OSType
	case FieldCPUCores:
		return &h.CPUCores
	case FieldRAM:
		return &h.RAM
	case FieldStorageType:
		return &h.StorageType
	case FieldStorageTotalTB:
		return &h.StorageTotalTB
	case FieldDriveOrVolumeGroup:
		return &h.DriveOrVolumeGroup
	case FieldFileSystem:
		return &h.FileSystem
	case FieldLogicalVolume:
		return &h.LogicalVolume
	case FieldStorageAllocationGB:
		return &h.StorageAllocationGB
	case FieldRecommendedStorageGB:
		return &h.RecommendedStorageGB
	case FieldDrivePurpose:
		return &h.DrivePurpose
	case FieldVxRailCluster:
		return &h.VxRailCluster
	case FieldVCenterHost:
		return &h.VCenterHost
	case FieldVMHardwareVersion:
		return &h.VMHardwareVersion
	case FieldVMMemoryReservation:
		return &h.VMMemoryReservation
	case FieldVMCPUReservation:
		return &h.VMCPUReservation
	default:
		return nil
	}
}
