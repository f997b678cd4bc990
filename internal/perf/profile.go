package perf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/pkg/errors"
)

// profiler writes a CPU profile spanning the profiled rounds, plus a snapshot
// of every runtime profile for each of them, under dir/t<round>/. A copy of
// the running executable goes to dir/exe so pprof can symbolize later.
//
// Once err is set the profiler stays off.
type profiler struct {
	dir   string
	debug int

	want   bool
	active bool
	err    error
	cpu    *os.File
}

func (p *profiler) sync(round int) {
	var err error
	switch {
	case p.err != nil:
		return
	case p.active && !p.want:
		err = p.stop()
	case !p.active && p.want:
		err = p.start(round)
	}
	p.fail(err)
}

func (p *profiler) snapshot(round int) {
	if p.active {
		p.fail(p.writeAll(round))
	}
}

func (p *profiler) fail(err error) {
	if err != nil {
		p.err = err
		_ = p.stop()
	}
}

func (p *profiler) close() error {
	if err := p.stop(); p.err == nil {
		p.err = err
	}
	return p.err
}

func (p *profiler) start(round int) error {
	if err := p.saveExecutable(); err != nil {
		return err
	}
	f, err := p.create(round, "cpu")
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "starting cpu profile")
	}
	p.cpu = f
	p.active = true
	return nil
}

func (p *profiler) stop() error {
	p.want, p.active = false, false
	if p.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	f := p.cpu
	p.cpu = nil
	return errors.Wrap(f.Close(), "closing cpu profile")
}

func (p *profiler) writeAll(round int) error {
	for _, prof := range pprof.Profiles() {
		f, err := p.create(round, prof.Name())
		if err != nil {
			return err
		}
		err = prof.WriteTo(f, p.debug)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "writing %s profile", prof.Name())
		}
	}
	return nil
}

func (p *profiler) saveExecutable() (rerr error) {
	dst := filepath.Join(p.dir, "exe")
	if _, err := os.Stat(dst); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "checking saved executable")
	}

	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}
	src, err := os.Open(exe)
	if err != nil {
		return errors.Wrap(err, "reading executable")
	}
	defer src.Close()

	out, err := createAll(dst)
	if err != nil {
		return errors.Wrap(err, "saving executable")
	}
	defer func() {
		if cerr := out.Close(); rerr == nil {
			rerr = cerr
		}
	}()
	_, err = io.Copy(out, src)
	return errors.Wrap(err, "saving executable")
}

func (p *profiler) create(round int, name string) (*os.File, error) {
	f, err := createAll(filepath.Join(p.dir, fmt.Sprintf("t%d", round), name))
	return f, errors.Wrapf(err, "creating %s profile", name)
}

// createAll creates the named file along with any missing parent directories.
func createAll(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o777); err != nil {
		return nil, err
	}
	return os.Create(name)
}
