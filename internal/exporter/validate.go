package exporter

import "fmt"

var validAssetTypes = map[string]bool{
	"model":    true,
	"material": true,
	"texture":  true,
}

var validInstanceTypes = map[string]bool{
	"model":            true,
	"pointLight":       true,
	"directionalLight": true,
	"spotLight":        true,
}

var validRatings = map[string]bool{
	"GENERAL":  true,
	"MODERATE": true,
	"ADULT":    true,
}

// Validate performs structural checks on a built document: required fields,
// enum values, and model instances referencing known asset ids. Findings are
// warnings for the caller to log; validation never blocks the export.
func Validate(doc *Document) []error {
	var errs []error

	if doc.Name == "" {
		errs = append(errs, fmt.Errorf("document has no name"))
	}
	if doc.Version == "" {
		errs = append(errs, fmt.Errorf("document has no version"))
	}
	if doc.SchemaVersion == "" {
		errs = append(errs, fmt.Errorf("document has no schemaVersion"))
	}
	if doc.Rating != "" && !validRatings[doc.Rating] {
		errs = append(errs, fmt.Errorf("unknown rating %q", doc.Rating))
	}

	assetIDs := make(map[string]bool, len(doc.Assets))
	for i, asset := range doc.Assets {
		if asset.ID == "" {
			errs = append(errs, fmt.Errorf("asset %d has no id", i))
		}
		if !validAssetTypes[asset.Type] {
			errs = append(errs, fmt.Errorf("asset %q has unknown type %q", asset.ID, asset.Type))
		}
		if asset.URI == "" {
			errs = append(errs, fmt.Errorf("asset %q has no uri", asset.ID))
		}
		assetIDs[asset.ID] = true
	}

	for _, inst := range doc.Instances {
		if inst.ID == "" {
			errs = append(errs, fmt.Errorf("instance of type %q has no id", inst.Type))
		}
		if !validInstanceTypes[inst.Type] {
			errs = append(errs, fmt.Errorf("instance %q has unknown type %q", inst.ID, inst.Type))
		}
		switch inst.Type {
		case "model":
			if inst.Asset == "" {
				errs = append(errs, fmt.Errorf("model instance %q references no asset", inst.ID))
			} else if !assetIDs[inst.Asset] {
				errs = append(errs, fmt.Errorf("model instance %q references unknown asset %q", inst.ID, inst.Asset))
			}
		default:
			if inst.Light == nil {
				errs = append(errs, fmt.Errorf("light instance %q has no light properties", inst.ID))
			}
		}
	}

	return errs
}
