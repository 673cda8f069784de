package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want Role
	}{
		{
			name: "follower",
			resp: "Zookeeper version: 3.8.4\nClients:\n /127.0.0.1:5555[0](queued=0,recved=1,sent=0)\n\nLatency min/avg/max: 0/0.0/0\nMode: follower\nNode count: 5\n",
			want: Follower,
		},
		{name: "leader", resp: "Zxid: 0x10000002a\nMode: leader\nNode count: 12\n", want: Leader},
		{name: "standalone", resp: "Mode: standalone\n", want: Standalone},
		{name: "not serving", resp: "This ZooKeeper instance is not currently serving requests\n", want: Unknown},
		{name: "whitelist", resp: "stat is not executed because it is not in the whitelist.\n", want: Unknown},
		{name: "empty", resp: "", want: Unknown},
		{name: "case sensitive", resp: "mode: leader\n", want: Unknown},
		{name: "follower wins over leader", resp: "Mode: leader\nMode: follower\n", want: Follower},
		{name: "leader wins over standalone", resp: "Mode: standalone\nMode: leader\n", want: Leader},
		{name: "follower wins over standalone", resp: "Mode: standalone Mode: follower", want: Follower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.resp))
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Leader", Leader.String())
	assert.Equal(t, "Unknown", Unknown.String())
}
