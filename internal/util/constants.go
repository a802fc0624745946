package util

const (
	CertificateDate   = "January 2, 2006"
	CertificatePrefix = "certificates"
)

const (
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimePDF = "application/pdf"
)
