package shared

import "time"

type Config struct {
	Environment       *bool         `yaml:"environment" validate:"required"`
	Port              *string       `yaml:"port" validate:"required"`
	BackendURL        *string       `yaml:"backend_url" validate:"required"`
	Cors              []*string     `yaml:"cors" validate:"required"`
	Postgres          *string       `yaml:"postgres" validate:"required"`
	Mongo             *string       `yaml:"mongo" validate:"required"`
	MongoDatabase     *string       `yaml:"mongo_database" validate:"required"`
	VerifyHost        *string       `yaml:"verify_host" validate:"required"`
	MinIoEndpoint     *string       `yaml:"minio_endpoint" validate:"required"`
	MinIoAccessKey    *string       `yaml:"minio_access_key" validate:"required"`
	MinIoSecretKey    *string       `yaml:"minio_secret_key" validate:"required"`
	MinIoSecure       *bool         `yaml:"minio_secure"`
	BucketCertificate *string       `yaml:"bucket_certificate" validate:"required"`
	BatchRetention    time.Duration `yaml:"batch_retention" validate:"gte=0"`
	SigningEnabled    *bool         `yaml:"signing_enabled"`
	SigningCertPath   *string       `yaml:"signing_cert_path"`
	SigningKeyPath    *string       `yaml:"signing_key_path"`
	Render            *RenderConfig `yaml:"render" validate:"required"`
}

// RenderConfig drives the certificate pipeline. Backends is the fallback
// priority list, first entry tried first.
type RenderConfig struct {
	Backends        []string      `yaml:"backends" validate:"required,min=1,unique,dive,oneof=engine vector remote paginated"`
	Workers         int           `yaml:"workers" validate:"gte=0"`
	EngineSlots     int           `yaml:"engine_slots" validate:"gte=0"`
	EngineCommand   []string      `yaml:"engine_command"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout" validate:"gte=0"`
	DocumentTimeout time.Duration `yaml:"document_timeout" validate:"gte=0"`
	AssetTimeout    time.Duration `yaml:"asset_timeout" validate:"gte=0"`
	Timezone        string        `yaml:"timezone"`
	DateLayout      string        `yaml:"date_layout"`
	TimeLayout      string        `yaml:"time_layout"`
	PageSize        string        `yaml:"page_size" validate:"omitempty,oneof=A4 A5 Letter Legal"`
	PageMargin      float64       `yaml:"page_margin" validate:"gte=0"`
	RemoteBaseURL   string        `yaml:"remote_base_url" validate:"omitempty,url"`
	RemoteCloudName string        `yaml:"remote_cloud_name"`
	RemoteBaseImage string        `yaml:"remote_base_image"`
	RemoteTimeout   time.Duration `yaml:"remote_timeout" validate:"gte=0"`
}
