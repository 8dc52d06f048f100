package update

import (
	"github.com/adamancini/foxport/internal/state"
	"github.com/adamancini/foxport/internal/types"
)

// Reasons attached to Unknown statuses.
const (
	ReasonRemoteUnavailable = "remote version unavailable"
	ReasonUnparsableVersion = "unparsable version"
)

// Status is the outcome of reconciling a local install against the remote
// channel version.
type Status struct {
	Code      types.StatusCode `json:"code" yaml:"code"`
	Installed string           `json:"installed,omitempty" yaml:"installed,omitempty"`
	Remote    string           `json:"remote,omitempty" yaml:"remote,omitempty"`
	Reason    string           `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Reconcile classifies a channel given its local InstallRecord and the
// remote version string (remoteOK is false when the remote fetch failed).
//
// The function is pure and total: identical inputs always yield the identical
// Status, nothing is mutated, and no input combination produces an error.
func Reconcile(rec state.InstallRecord, remote string, remoteOK bool) Status {
	if !rec.Installed {
		return Status{Code: types.StatusNotInstalled}
	}

	if !remoteOK {
		return Status{
			Code:      types.StatusUnknown,
			Installed: rec.Version,
			Reason:    ReasonRemoteUnavailable,
		}
	}

	cmp, err := CompareVersions(rec.Version, remote)
	if err != nil {
		return Status{
			Code:      types.StatusUnknown,
			Installed: rec.Version,
			Remote:    remote,
			Reason:    ReasonUnparsableVersion,
		}
	}

	if cmp >= 0 {
		return Status{
			Code:      types.StatusUpToDate,
			Installed: rec.Version,
			Remote:    remote,
		}
	}

	return Status{
		Code:      types.StatusUpdateAvailable,
		Installed: rec.Version,
		Remote:    remote,
	}
}
