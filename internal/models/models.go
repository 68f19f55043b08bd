package models

import "time"

const (
	PlanFree       = "free"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanPremium, PlanEnterprise:
		return true
	}
	return false
}

// Account is the top-level tenant that owns monitored users and carries the
// login credentials. PasswordHash is never serialized.
type Account struct {
	ID           string    `db:"id" json:"id"`
	AccountName  string    `db:"account_name" json:"accountName"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Plan         string    `db:"plan" json:"plan"`
	RegisteredAt time.Time `db:"registered_at" json:"registeredAt"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// User is a monitored person belonging to exactly one account.
// (id_account, national_id) is unique within the store.
type User struct {
	ID         string    `db:"id" json:"id"`
	AccountID  string    `db:"id_account" json:"idAccount"`
	FirstName  string    `db:"first_name" json:"firstName"`
	LastName   string    `db:"last_name" json:"lastName"`
	NationalID int64     `db:"national_id" json:"nationalId"`
	HeightCM   float64   `db:"height_cm" json:"heightCm"`
	WeightKG   float64   `db:"weight_kg" json:"weightKg"`
	Country    string    `db:"country" json:"country"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Device is a wearable sensor belonging to exactly one user.
// (id_user, serial_number) is unique within the store.
type Device struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"id_user" json:"idUser"`
	DeviceName      string    `db:"device_name" json:"deviceName"`
	SerialNumber    string    `db:"serial_number" json:"serialNumber"`
	FirmwareVersion string    `db:"firmware_version" json:"firmwareVersion"`
	BatteryLevel    int       `db:"battery_level" json:"batteryLevel"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	RegisteredAt    time.Time `db:"registered_at" json:"registeredAt"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// PostureReading is one posture sample emitted by a device. TiltDeg is
// nullable; the tilt-average aggregation counts a missing tilt as zero.
type PostureReading struct {
	ID         string     `db:"id" json:"id"`
	DeviceID   string     `db:"id_device" json:"idDevice"`
	TiltDeg    *float64   `db:"tilt_deg" json:"tiltDeg"`
	VelocityMS float64    `db:"velocity_m_s" json:"velocityMs"`
	RecordedAt time.Time  `db:"recorded_at" json:"recordedAt"`
	Uploaded   bool       `db:"uploaded" json:"uploaded"`
	UploadedAt *time.Time `db:"uploaded_at" json:"uploadedAt"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// AnalysisResult is a derived metric computed from one reading. The device is
// referenced directly as well; the reading must belong to that device.
// (id_reading, analysis_type) is unique within the store.
type AnalysisResult struct {
	ID           string    `db:"id" json:"id"`
	DeviceID     string    `db:"id_device" json:"idDevice"`
	ReadingID    string    `db:"id_reading" json:"idReading"`
	AnalysisType string    `db:"analysis_type" json:"analysisType"`
	ResultValue  float64   `db:"result_value" json:"resultValue"`
	ResultUnit   string    `db:"result_unit" json:"resultUnit"`
	ResultStatus string    `db:"result_status" json:"resultStatus"`
	Comments     *string   `db:"comments" json:"comments,omitempty"`
	AnalyzedAt   time.Time `db:"analyzed_at" json:"analyzedAt"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	HeapUsedBytes     int64     `db:"heap_used_bytes"`
	HeapMaxBytes      int64     `db:"heap_max_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
