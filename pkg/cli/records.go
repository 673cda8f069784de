package cli

import (
	"github.com/zzk-cli/zzk/pkg/role"
	"github.com/zzk-cli/zzk/pkg/zookeeper"
)

// nodeRecord is printed by get and set. The table format flattens Stat
// into one column per field.
type nodeRecord struct {
	Key   string                 `json:"key" yaml:"key"`
	Value string                 `json:"value" yaml:"value"`
	Stat  zookeeper.NodeMetadata `json:"stat" yaml:"stat"`
}

type keyRecord struct {
	Key string `json:"key" yaml:"key"`
}

type keyValueRecord struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type existsRecord struct {
	Key    string `json:"key" yaml:"key"`
	Exists bool   `json:"exists" yaml:"exists"`
}

type deleteRecord struct {
	Key     string `json:"key" yaml:"key"`
	Deleted int    `json:"deleted" yaml:"deleted"`
}

type roleRecord struct {
	Host  string `json:"host" yaml:"host"`
	Role  string `json:"role" yaml:"role"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newNodeRecord(rec *zookeeper.NodeRecord) nodeRecord {
	return nodeRecord{Key: rec.Path, Value: rec.ValueString(), Stat: rec.Stat}
}

func newKeyRecords(keys []string) []keyRecord {
	out := make([]keyRecord, len(keys))
	for i, k := range keys {
		out[i] = keyRecord{Key: k}
	}
	return out
}

func newKeyValueRecords(entries []zookeeper.Entry) []keyValueRecord {
	out := make([]keyValueRecord, len(entries))
	for i, e := range entries {
		out[i] = keyValueRecord{Key: e.Path, Value: e.ValueString()}
		if e.Err != nil {
			out[i].Error = e.Err.Error()
		}
	}
	return out
}

func newRoleRecords(results []role.Result) []roleRecord {
	out := make([]roleRecord, len(results))
	for i, r := range results {
		out[i] = roleRecord{Host: r.Address, Role: r.Role.String()}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}
