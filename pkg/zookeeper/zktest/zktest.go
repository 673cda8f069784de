// Package zktest provides an in-memory namespace for testing code that
// talks to the coordination service through zookeeper.Session.
package zktest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
)

// Server is an in-memory namespace shared by every session it hands out.
// It follows the session library's error conventions so client code paths
// behave as they would against a live ensemble.
type Server struct {
	mu    sync.Mutex
	nodes map[string]*node
	zxid  int64

	calls  []string
	opened int
	closed int

	// ConnectErr, when set, is returned by Connect.
	ConnectErr error
	// FailGet and FailChildren inject errors for specific paths.
	FailGet      map[string]error
	FailChildren map[string]error
	// Before runs ahead of every session call, outside the lock, so it can
	// stand in for another client changing the namespace.
	Before func(op, path string)
}

type node struct {
	data []byte
	stat zk.Stat
}

// NewServer returns a namespace holding only the root node.
func NewServer() *Server {
	return &Server{
		nodes:        map[string]*node{"/": {}},
		FailGet:      map[string]error{},
		FailChildren: map[string]error{},
	}
}

// Put creates path and any missing ancestors, then stores value.
func (f *Server) Put(path, value string) *Server {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range append(ancestors(path), path) {
		if _, ok := f.nodes[p]; !ok {
			f.createLocked(p, nil)
		}
	}
	f.setLocked(path, []byte(value))
	return f
}

// Has reports whether path exists.
func (f *Server) Has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.nodes[path]
	return ok
}

// Value returns the value stored at path.
func (f *Server) Value(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[path]
	if !ok {
		return ""
	}
	return string(n.data)
}

// CallsOf returns the paths of the recorded calls of op, in order.
// Ops are get, getw, set, create, delete, exists and children.
func (f *Server) CallsOf(op string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, op+" ") {
			out = append(out, strings.TrimPrefix(c, op+" "))
		}
	}
	return out
}

// Sessions returns how many sessions were opened and closed.
func (f *Server) Sessions() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

// Connect opens a session. Its signature matches zookeeper.Connector once
// the result is converted to the Session interface.
func (f *Server) Connect(ctx context.Context, _ []string, _ time.Duration) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ConnectErr != nil {
		return nil, f.ConnectErr
	}
	f.opened++
	return &Conn{srv: f}, nil
}

func ancestors(path string) []string {
	var out []string
	for i := 1; i < len(path); i++ {
		if path[i] == '/' {
			out = append(out, path[:i])
		}
	}
	return out
}

// ParentOf returns the parent of an absolute path.
func ParentOf(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

func (f *Server) createLocked(path string, data []byte) {
	f.zxid++
	now := time.Now().UnixMilli()
	f.nodes[path] = &node{
		data: data,
		stat: zk.Stat{Czxid: f.zxid, Mzxid: f.zxid, Ctime: now, Mtime: now, Pzxid: f.zxid, DataLength: int32(len(data))},
	}
	if parent, ok := f.nodes[ParentOf(path)]; ok {
		parent.stat.NumChildren++
		parent.stat.Cversion++
		parent.stat.Pzxid = f.zxid
	}
}

func (f *Server) setLocked(path string, data []byte) *zk.Stat {
	f.zxid++
	n := f.nodes[path]
	n.data = data
	n.stat.Version++
	n.stat.Mzxid = f.zxid
	n.stat.Mtime = time.Now().UnixMilli()
	n.stat.DataLength = int32(len(data))
	stat := n.stat
	return &stat
}

// Conn is one session on a Server.
type Conn struct {
	srv    *Server
	closed bool
}

// enter locks the server and records the call; the caller must unlock.
func (s *Conn) enter(op, path string) error {
	if hook := s.srv.Before; hook != nil {
		hook(op, path)
	}
	s.srv.mu.Lock()
	s.srv.calls = append(s.srv.calls, fmt.Sprintf("%s %s", op, path))
	if s.closed {
		return zk.ErrConnectionClosed
	}
	return nil
}

func (s *Conn) Get(path string) ([]byte, *zk.Stat, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("get", path); err != nil {
		return nil, nil, err
	}
	return s.srv.getLocked(path)
}

func (s *Conn) GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("getw", path); err != nil {
		return nil, nil, nil, err
	}
	data, stat, err := s.srv.getLocked(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return data, stat, make(chan zk.Event, 1), nil
}

func (f *Server) getLocked(path string) ([]byte, *zk.Stat, error) {
	if err := f.FailGet[path]; err != nil {
		return nil, nil, err
	}
	n, ok := f.nodes[path]
	if !ok {
		return nil, nil, zk.ErrNoNode
	}
	stat := n.stat
	return append([]byte(nil), n.data...), &stat, nil
}

func (s *Conn) Set(path string, data []byte, version int32) (*zk.Stat, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("set", path); err != nil {
		return nil, err
	}
	n, ok := s.srv.nodes[path]
	if !ok {
		return nil, zk.ErrNoNode
	}
	if version != -1 && version != n.stat.Version {
		return nil, zk.ErrBadVersion
	}
	return s.srv.setLocked(path, data), nil
}

func (s *Conn) Create(path string, data []byte, _ int32, _ []zk.ACL) (string, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("create", path); err != nil {
		return "", err
	}
	if _, ok := s.srv.nodes[path]; ok {
		return "", zk.ErrNodeExists
	}
	if _, ok := s.srv.nodes[ParentOf(path)]; !ok {
		return "", zk.ErrNoNode
	}
	s.srv.createLocked(path, data)
	return path, nil
}

func (s *Conn) Delete(path string, version int32) error {
	defer s.srv.mu.Unlock()
	if err := s.enter("delete", path); err != nil {
		return err
	}
	n, ok := s.srv.nodes[path]
	if !ok {
		return zk.ErrNoNode
	}
	if version != -1 && version != n.stat.Version {
		return zk.ErrBadVersion
	}
	if n.stat.NumChildren > 0 {
		return zk.ErrNotEmpty
	}
	s.srv.removeLocked(path)
	return nil
}

// Remove deletes path and its subtree behind the client's back.
func (f *Server) Remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for p := range f.nodes {
		if strings.HasPrefix(p, path+"/") {
			delete(f.nodes, p)
		}
	}
	f.removeLocked(path)
}

func (f *Server) removeLocked(path string) {
	if _, ok := f.nodes[path]; !ok {
		return
	}
	delete(f.nodes, path)
	if parent, ok := f.nodes[ParentOf(path)]; ok {
		parent.stat.NumChildren--
		parent.stat.Cversion++
	}
}

func (s *Conn) Exists(path string) (bool, *zk.Stat, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("exists", path); err != nil {
		return false, nil, err
	}
	n, ok := s.srv.nodes[path]
	if !ok {
		return false, nil, nil
	}
	stat := n.stat
	return true, &stat, nil
}

func (s *Conn) Children(path string) ([]string, *zk.Stat, error) {
	defer s.srv.mu.Unlock()
	if err := s.enter("children", path); err != nil {
		return nil, nil, err
	}
	if err := s.srv.FailChildren[path]; err != nil {
		return nil, nil, err
	}
	n, ok := s.srv.nodes[path]
	if !ok {
		return nil, nil, zk.ErrNoNode
	}
	// Map iteration order stands in for the service's unspecified order.
	var names []string
	for p := range s.srv.nodes {
		if p != "/" && ParentOf(p) == path {
			names = append(names, p[strings.LastIndex(p, "/")+1:])
		}
	}
	stat := n.stat
	return names, &stat, nil
}

func (s *Conn) Close() {
	s.srv.mu.Lock()
	defer s.srv.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.srv.closed++
	}
}
