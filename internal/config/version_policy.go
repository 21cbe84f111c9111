package config

import "strings"

// CurrentConfigVersion is the configVersion emitted by `ptah doctor` and the
// only version this build accepts.
const CurrentConfigVersion = "1"

// SupportedConfigVersions lists every configVersion this build can load.
var SupportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether v can be loaded by this build.
func IsSupportedConfigVersion(v string) bool {
	for _, s := range SupportedConfigVersions {
		if v == s {
			return true
		}
	}
	return false
}

// SupportedConfigVersionsCSV renders the supported versions for diagnostics.
func SupportedConfigVersionsCSV() string {
	return strings.Join(SupportedConfigVersions, ", ")
}
