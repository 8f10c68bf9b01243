// Package service provides the business logic orchestration layer for bigip-sd.
//
// TargetService runs the whole pipeline: it loads the URL and subnet lists,
// resolves every URL host, classifies the resolved sites against the subnets and
// builds the two labeled export records. The command layer only formats and
// writes what the service returns.
//
// # Example Usage
//
//	deps, err := domain.NewAppDependencies(cfg)
//	if err != nil {
//	    return err
//	}
//	defer deps.Close()
//
//	svc := service.NewTargetService(deps.Resolver(), cfg)
//	result, err := svc.Generate(ctx, "urls.txt", "subnets.txt")
//	if err != nil {
//	    return err
//	}
//	data, err := export.Encode(result.Records, export.FormatJSON)
package service
