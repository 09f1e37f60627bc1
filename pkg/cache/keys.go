package cache

import "fmt"

// Key builders keep the cache namespace in one place.

// PolicyRulesKey caches the sorted cancellation rule set of one package.
func PolicyRulesKey(packageID string) string {
	return fmt.Sprintf("policy:rules:%s", packageID)
}

// PackageKey caches one travel package row.
func PackageKey(packageID string) string {
	return fmt.Sprintf("package:%s", packageID)
}

// DashboardKey caches the admin analytics dashboard.
func DashboardKey() string {
	return "analytics:dashboard"
}
