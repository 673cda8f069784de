package zookeeper

import (
	"strings"
	"unicode/utf8"

	"github.com/go-zookeeper/zk"
)

// NodeMetadata is the stat structure the service keeps for every node.
type NodeMetadata struct {
	Czxid          int64 `json:"czxid" yaml:"czxid"`
	Mzxid          int64 `json:"mzxid" yaml:"mzxid"`
	Ctime          int64 `json:"ctime" yaml:"ctime"`
	Mtime          int64 `json:"mtime" yaml:"mtime"`
	Version        int32 `json:"version" yaml:"version"`
	Cversion       int32 `json:"cversion" yaml:"cversion"`
	Aversion       int32 `json:"aversion" yaml:"aversion"`
	EphemeralOwner int64 `json:"ephemeral_owner" yaml:"ephemeral_owner"`
	DataLength     int32 `json:"data_length" yaml:"data_length"`
	NumChildren    int32 `json:"num_children" yaml:"num_children"`
	Pzxid          int64 `json:"pzxid" yaml:"pzxid"`
}

// NodeRecord is a node's value and metadata as read in one request.
type NodeRecord struct {
	Path  string
	Value []byte
	Stat  NodeMetadata
}

// ValueString returns the value as text, replacing invalid UTF-8 sequences.
func (r *NodeRecord) ValueString() string {
	return valueString(r.Value)
}

// Entry is one hydrated list item. Err is set only under the collect policy.
type Entry struct {
	Path  string
	Value []byte
	Err   error
}

// ValueString returns the value as text, replacing invalid UTF-8 sequences.
func (e Entry) ValueString() string {
	return valueString(e.Value)
}

func valueString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}

func metadataFromStat(s *zk.Stat) NodeMetadata {
	if s == nil {
		return NodeMetadata{}
	}
	return NodeMetadata{
		Czxid:          s.Czxid,
		Mzxid:          s.Mzxid,
		Ctime:          s.Ctime,
		Mtime:          s.Mtime,
		Version:        s.Version,
		Cversion:       s.Cversion,
		Aversion:       s.Aversion,
		EphemeralOwner: s.EphemeralOwner,
		DataLength:     s.DataLength,
		NumChildren:    s.NumChildren,
		Pzxid:          s.Pzxid,
	}
}
