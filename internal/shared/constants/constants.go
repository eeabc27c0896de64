package constants

// Table names
const (
	TablePackages          = "packages"
	TablePackageAddOns     = "package_add_ons"
	TableUserPackages      = "user_packages"
	TableUserPackageAddOns = "user_package_add_ons"
	TableStatusTypes       = "status_types"
)

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
