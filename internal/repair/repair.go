// Package repair composes the repair passes into strategies the CLI can run.
package repair

import (
	"context"

	"ltfix/internal/driver"
)

// System is a repair strategy.
type System interface {
	Name() string
	// RepairProject repairs fn inside a cargo project, editing srcPath in place.
	RepairProject(ctx context.Context, srcPath, manifestPath, fn string) (driver.Result, error)
	// RepairFile copies filePath to newFilePath and repairs the copy.
	RepairFile(ctx context.Context, filePath, newFilePath string) (driver.Result, error)
	// RepairFunction copies filePath to newFilePath and repairs fn in the copy.
	RepairFunction(ctx context.Context, filePath, newFilePath, fn string) (driver.Result, error)
}
