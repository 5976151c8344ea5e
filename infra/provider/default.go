package provider

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Settings is the gcp:* stack config shared by every resource.
type Settings struct {
	Project string
	Region  string
}

func LoadSettings(ctx *pulumi.Context) Settings {
	gcpCfg := config.New(ctx, "gcp")
	return Settings{
		Project: gcpCfg.Require("project"),
		Region:  gcpCfg.Require("region"),
	}
}

// SetupDefaultProvider labels everything it creates with app=leads-dashboard.
func SetupDefaultProvider(ctx *pulumi.Context, s Settings) (*gcp.Provider, error) {
	return gcp.NewProvider(ctx, "gcpProvider", &gcp.ProviderArgs{
		Project:             pulumi.String(s.Project),
		Region:              pulumi.String(s.Region),
		UserProjectOverride: pulumi.Bool(true),
		DefaultLabels: pulumi.StringMap{
			"app": pulumi.String("leads-dashboard"),
		},
	})
}
