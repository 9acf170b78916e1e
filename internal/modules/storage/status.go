package storage

import "github.com/wishwall/core/internal/config"

// Status reports whether the selected backend has everything it needs,
// without touching the network.
type Status struct {
	Type        string            `json:"type"`
	Configured  bool              `json:"configured"`
	Error       string            `json:"error,omitempty"`
	Environment StatusEnvironment `json:"environment"`
}

type StatusEnvironment struct {
	IsProduction bool   `json:"isProduction"`
	IsHosted     bool   `json:"isHosted"`
	Platform     string `json:"platform"`
}

// Check inspects the configuration for the selected backend.
func Check(cfg *config.AppConfig) Status {
	platform := cfg.Hosted.Platform()
	status := Status{
		Type: cfg.Storage.Type,
		Environment: StatusEnvironment{
			IsProduction: cfg.IsProd(),
			IsHosted:     platform != "",
			Platform:     platformLabel(platform),
		},
	}

	switch cfg.Storage.Type {
	case config.StorageS3:
		s3 := cfg.Storage.S3
		status.Configured = s3.AccessKeyID != "" && s3.SecretAccessKey != "" && s3.Bucket != ""
		if !status.Configured {
			status.Error = "AWS S3 configuration incomplete. Missing required settings."
		}
	case config.StorageCloudinary:
		cl := cfg.Storage.Cloudinary
		status.Configured = cl.CloudName != "" && cl.APIKey != "" && cl.APISecret != "" && cl.UploadPreset != ""
		if !status.Configured {
			status.Error = "Cloudinary configuration incomplete. Missing required settings."
		}
	default:
		if cfg.IsProd() || platform != "" {
			status.Error = "Local storage does not work in production/hosted environments."
		} else {
			status.Configured = true
		}
	}

	return status
}

func platformLabel(platform string) string {
	switch platform {
	case "vercel":
		return "Vercel"
	case "netlify":
		return "Netlify"
	case "railway":
		return "Railway"
	}
	return "Local"
}
