package launcher

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/minepkg/minelaunch/internals/logparser"
)

// ErrGameCrashed is returned when the game printed a crash report
var ErrGameCrashed = errors.New("the game crashed")

const terminateGrace = 10 * time.Second

// Exit describes a finished game process
type Exit struct {
	Code    int
	Started bool
	Crashed bool
}

// Supervisor runs a launch script and watches its output
type Supervisor struct {
	// Output receives every line (defaults to os.Stdout)
	Output io.Writer
	Stdin  io.Reader
	// Table classifies lines. Defaults to logparser.GameTable
	Table logparser.Table
	// OnEvent is called for every classified line
	OnEvent func(kind logparser.Kind, line string)
}

// Run starts the script and blocks until the process exited. Cancelling ctx
// terminates the whole process tree
func (s *Supervisor) Run(ctx context.Context, script *Script) (*Exit, error) {
	cmd := scriptCommand(script.Path)
	cmd.Stdin = s.Stdin

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "could not start launch script")
	}

	exit := &Exit{}
	scanned := make(chan struct{})
	go func() {
		defer close(scanned)
		s.scan(pr, exit)
	}()

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.Println("[INFO] stopping the game")
			if err := terminateTree(int32(cmd.Process.Pid)); err != nil {
				log.Printf("[WARN] could not stop the game: %s", err)
			}
		case <-stopped:
		}
	}()

	waitErr := cmd.Wait()
	close(stopped)
	pw.Close()
	<-scanned

	exit.Code = cmd.ProcessState.ExitCode()
	if exit.Crashed {
		return exit, ErrGameCrashed
	}
	// 130 is a normal stop through ctrl-c
	if exit.Code == 0 || exit.Code == 130 || ctx.Err() != nil {
		return exit, nil
	}
	return exit, waitErr
}

func (s *Supervisor) scan(r io.Reader, exit *Exit) {
	out := s.Output
	if out == nil {
		out = os.Stdout
	}
	table := s.Table
	if table == nil {
		table = logparser.GameTable
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		io.WriteString(out, line+"\n")

		kind := table.Classify(line)
		switch kind {
		case logparser.Unmatched:
			continue
		case logparser.GameStarted:
			exit.Started = true
		case logparser.GameCrashed:
			exit.Crashed = true
		}
		if s.OnEvent != nil {
			s.OnEvent(kind, line)
		}
	}
	io.Copy(io.Discard, r)
}

func scriptCommand(path string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/c", path)
	}
	return exec.Command("/bin/sh", path)
}

// terminateTree terminates pid and all its children. Processes still running
// after terminateGrace are killed
func terminateTree(pid int32) error {
	root, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	tree := collect(root)

	// children first, the script would otherwise run its cleanup while java is still running
	for i := len(tree) - 1; i >= 0; i-- {
		tree[i].Terminate()
	}

	deadline := time.Now().Add(terminateGrace)
	for _, p := range tree {
		for time.Now().Before(deadline) {
			running, err := p.IsRunning()
			if err != nil || !running {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if running, _ := p.IsRunning(); running {
			p.Kill()
		}
	}
	return nil
}

func collect(p *process.Process) []*process.Process {
	tree := []*process.Process{p}
	children, err := p.Children()
	if err != nil {
		return tree
	}
	for _, child := range children {
		tree = append(tree, collect(child)...)
	}
	return tree
}
