package domain

import (
	"strings"

	"github.com/rs/xid"
)

// InstanceID identifies one launch attempt of a pod. The executor and all
// tasks of the attempt share it; tasks are not separately identified at
// this layer beyond their container name.
type InstanceID struct {
	PodID string `json:"pod_id"`
	ID    string `json:"id"`
}

// String returns the wire form of the instance identity.
func (i InstanceID) String() string {
	return i.ID
}

// InstanceIDFactory mints a fresh instance identity for a pod path. It
// must yield a distinct identity per launch attempt and be safe to call
// once per compile.
type InstanceIDFactory func(podID string) InstanceID

// NewInstanceID is the default factory: a sanitized pod path joined with
// a sortable unique suffix.
func NewInstanceID(podID string) InstanceID {
	safe := strings.ReplaceAll(strings.Trim(podID, "/"), "/", "_")
	return InstanceID{
		PodID: podID,
		ID:    safe + ".instance-" + xid.New().String(),
	}
}
