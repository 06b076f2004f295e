// Package platform contains operating system helpers: the per-user config
// directory and the single-instance guard.
package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "activate"
	dialTimeout     = 500 * time.Millisecond
)

// Instance holds the single-instance lock: a listener on a localhost port
// derived from the application name. A second launch connects to it and
// asks the running instance to show itself.
type Instance struct {
	listener net.Listener
	address  string

	mu       sync.Mutex
	activate func()
	once     sync.Once
}

// Acquire takes the lock for appName. When another instance holds it, that
// instance is asked to activate and ErrAlreadyRunning is returned.
func Acquire(appName string) (*Instance, error) {
	return acquireAt(instanceAddress(appName))
}

func acquireAt(address string) (*Instance, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if signalErr := signalActivate(address); signalErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, signalErr)
		}
		return nil, ErrAlreadyRunning
	}

	instance := &Instance{listener: listener, address: listener.Addr().String()}
	go instance.serve()
	return instance, nil
}

// OnActivate sets the callback run when a second launch is detected.
func (instance *Instance) OnActivate(fn func()) {
	instance.mu.Lock()
	instance.activate = fn
	instance.mu.Unlock()
}

// Release frees the lock.
func (instance *Instance) Release() error {
	if instance == nil || instance.listener == nil {
		return nil
	}
	var err error
	instance.once.Do(func() {
		err = instance.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (instance *Instance) Address() string {
	if instance == nil {
		return ""
	}
	return instance.address
}

func (instance *Instance) serve() {
	for {
		conn, err := instance.listener.Accept()
		if err != nil {
			return
		}
		go instance.handle(conn)
	}
}

func (instance *Instance) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateCommand {
		return
	}

	instance.mu.Lock()
	activate := instance.activate
	instance.mu.Unlock()
	if activate != nil {
		activate()
	}
}

func signalActivate(address string) error {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = fmt.Fprintln(conn, activateCommand)
	return err
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
