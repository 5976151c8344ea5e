package cloudrun

import (
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/leads-dashboard/infra/common"
	registry "github.com/GregMSThompson/leads-dashboard/infra/docker"
	"github.com/GregMSThompson/leads-dashboard/infra/provider"
	"github.com/GregMSThompson/leads-dashboard/infra/secret"
)

type sheetSettings struct {
	timezone        string
	refreshInterval string
	fetchTimeout    string
}

func SetupCloudRun(ctx *pulumi.Context,
	prov *gcp.Provider,
	s provider.Settings,
	apiSA *serviceaccount.Account,
	sheet *secret.SheetSecret,
	res ...pulumi.Resource) error {
	img, err := buildApiImage(ctx, s, res...)
	if err != nil {
		return err
	}

	srv, err := enableCloudRun(ctx, prov)
	if err != nil {
		return err
	}

	deps := append([]pulumi.Resource{srv}, sheet.Ready...)
	svc, err := createCloudRunService(ctx, img, apiSA, s, sheet.ID, loadSheetSettings(ctx), prov, deps...)
	if err != nil {
		return err
	}

	return setIAMAccessPolicy(ctx, svc, s, prov)
}

// CreateServiceAccount is the identity the api runs as. It needs no project
// roles of its own; secret access is granted by the secret package.
func CreateServiceAccount(ctx *pulumi.Context, prov *gcp.Provider) (*serviceaccount.Account, error) {
	return serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("leads-api"),
		DisplayName: pulumi.String("Leads Dashboard API"),
	},
		pulumi.Provider(prov),
	)
}

func buildApiImage(ctx *pulumi.Context, s provider.Settings, res ...pulumi.Resource) (*docker.Image, error) {
	hash, err := common.SourceHash("..")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"),
		},
		ImageName: pulumi.String(registry.ImageName(s, hash)),
	},
		pulumi.DependsOn(res),
	)
}

func enableCloudRun(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	s provider.Settings,
	sheetSecretID pulumi.StringOutput,
	ss sheetSettings,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	crCfg := config.New(ctx, "cloudrun")

	cpu := crCfg.Require("cpu")
	memory := crCfg.Require("memory")
	concurrency := crCfg.Require("concurrency")
	logLevel := crCfg.Require("logLevel")
	timeout, _ := strconv.Atoi(crCfg.Require("timeout"))

	env := func(name string, value pulumi.StringInput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
		return &cloudrun.ServiceTemplateSpecContainerEnvArgs{Name: pulumi.String(name), Value: value}
	}

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(s.Region),

		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.StringMap{
					// The snapshot lives in memory and refreshes on a timer,
					// so run exactly one always-on instance.
					"autoscaling.knative.dev/minScale":  pulumi.String("1"),
					"autoscaling.knative.dev/maxScale":  pulumi.String("1"),
					"run.googleapis.com/cpu-throttling": pulumi.String("false"),

					"run.googleapis.com/cpu":                   pulumi.String(cpu),
					"run.googleapis.com/memory":                pulumi.String(memory),
					"run.googleapis.com/container-concurrency": pulumi.String(concurrency),
				},
			},

			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),

				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: cloudrun.ServiceTemplateSpecContainerEnvArray{
							env("PROJECTID", pulumi.String(s.Project)),
							env("LOGLEVEL", pulumi.String(logLevel)),
							env("SHEETIDSECRET", sheetSecretID),
							env("TIMEZONE", pulumi.String(ss.timezone)),
							env("REFRESHINTERVAL", pulumi.String(ss.refreshInterval)),
							env("FETCHTIMEOUT", pulumi.String(ss.fetchTimeout)),
						},
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func setIAMAccessPolicy(ctx *pulumi.Context, svc *cloudrun.Service, s provider.Settings, prov *gcp.Provider) error {
	// The dashboard is read-only and served to the browser app directly.
	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(s.Region),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}

func loadSheetSettings(ctx *pulumi.Context) sheetSettings {
	sheetCfg := config.New(ctx, "sheet")
	return sheetSettings{
		timezone:        valueOr(sheetCfg.Get("timezone"), "UTC"),
		refreshInterval: valueOr(sheetCfg.Get("refreshInterval"), "5m"),
		fetchTimeout:    valueOr(sheetCfg.Get("fetchTimeout"), "15s"),
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
