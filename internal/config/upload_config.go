package config

type Upload struct{}

var _ UploadConfig = Upload{}

func (Upload) GetS3Endpoint() string {
	return GetEnv("S3_ENDPOINT", "")
}

func (Upload) GetS3AccessKey() string {
	return GetEnv("S3_ACCESS_KEY", "")
}

func (Upload) GetS3SecretKey() string {
	return GetEnv("S3_SECRET_KEY", "")
}

func (Upload) GetS3Bucket() string {
	return GetEnv("S3_BUCKET", "portal-uploads")
}

func (Upload) GetS3UseSSL() bool {
	return GetEnv("S3_USE_SSL", "true") == "true"
}
