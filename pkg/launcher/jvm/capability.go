// SPDX-License-Identifier: Apache-2.0
package jvm

// Capability is a runtime feature gated on the java major version.
type Capability uint

const (
	AutoCreateSharedArchive Capability = 1 << iota // -XX:+AutoCreateSharedArchive
	NativeAccess                                   // --enable-native-access
	UnsafeMemoryAccess                             // --sun-misc-unsafe-memory-access
)

// capabilityTable maps minimum major versions to the features they enable.
// New gates are added here, not as comparisons at the call sites.
var capabilityTable = []struct {
	Minimum    int
	Capability Capability
}{
	{Minimum: 19, Capability: AutoCreateSharedArchive},
	{Minimum: 22, Capability: NativeAccess},
	{Minimum: 23, Capability: UnsafeMemoryAccess},
}

// CapabilitiesFor returns every capability enabled at the given major version.
func CapabilitiesFor(major int) Capability {
	var caps Capability
	for _, gate := range capabilityTable {
		if major >= gate.Minimum {
			caps |= gate.Capability
		}
	}
	return caps
}

func (c Capability) String() string {
	switch c {
	case AutoCreateSharedArchive:
		return "auto-create-shared-archive"
	case NativeAccess:
		return "native-access"
	case UnsafeMemoryAccess:
		return "unsafe-memory-access"
	default:
		return "capabilities"
	}
}
