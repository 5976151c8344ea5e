package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/leads-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/leads-dashboard/infra/docker"
	"github.com/GregMSThompson/leads-dashboard/infra/provider"
	"github.com/GregMSThompson/leads-dashboard/infra/secret"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		settings := provider.LoadSettings(ctx)

		prov, err := provider.SetupDefaultProvider(ctx, settings)
		if err != nil {
			return err
		}

		repo, err := docker.CreateLeadsRepo(ctx, prov, settings)
		if err != nil {
			return err
		}

		apiSA, err := cloudrun.CreateServiceAccount(ctx, prov)
		if err != nil {
			return err
		}

		// the api reads the sheet id from secret manager at startup
		sheet, err := secret.SetupSheetSecret(ctx, prov, apiSA)
		if err != nil {
			return err
		}

		return cloudrun.SetupCloudRun(ctx, prov, settings, apiSA, sheet, repo)
	})
}
