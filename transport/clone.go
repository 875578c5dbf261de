package transport

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jeerrry/gitlit/object"
	"github.com/jeerrry/gitlit/packfile"
	"github.com/jeerrry/gitlit/pktline"
	"github.com/jeerrry/gitlit/store"
)

// ErrHeadCommit is returned when a cloned repository's head commit
// doesn't start with the expected "tree <hex>\n" line.
var ErrHeadCommit = errors.New("transport: malformed head commit")

// Clone fetches the repository at url and materializes it into dir,
// using f for the two HTTPS round trips. dir is created if it does not
// already exist.
//
// For the duration of the fetch and decode, the process's working
// directory is changed to dir, the way the command-line tool this
// package backs does its repository-relative work; on success it is
// restored before Clone returns. On failure the working directory is
// left wherever the failing step happened to leave it: Clone does not
// attempt to recover a consistent cwd after a partial clone, since the
// target directory itself is already in an undefined state at that
// point.
func Clone(f Fetcher, url, dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "transport: resolve %s", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "transport: create %s", dir)
	}
	s := store.New(dir)
	if err := s.Init(); err != nil {
		return errors.Wrapf(err, "transport: init %s", dir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "transport: getwd")
	}
	if err := os.Chdir(dir); err != nil {
		return errors.Wrapf(err, "transport: chdir %s", dir)
	}

	if err := clone(f, url, s); err != nil {
		return err
	}
	return errors.Wrap(os.Chdir(cwd), "transport: restore working directory")
}

func clone(f Fetcher, url string, s *store.Store) error {
	refs, err := f.Refs(url)
	if err != nil {
		return errors.Wrap(err, "transport: fetch refs")
	}

	head, err := pktline.ExtractHead(refs)
	if err != nil {
		return errors.Wrap(err, "transport: extract head")
	}

	want := pktline.BuildWantRequest(head)
	resp, err := f.UploadPack(url, want)
	if err != nil {
		return errors.Wrap(err, "transport: upload-pack")
	}

	pack := pktline.DemuxProgress(resp, func(msg []byte) {
		logrus.Info(strings.TrimSuffix(string(msg), "\n"))
	})

	if err := packfile.Decode(s, pack); err != nil {
		return errors.Wrap(err, "transport: decode pack")
	}

	headID, err := object.DecodeID(head)
	if err != nil {
		return errors.Wrapf(err, "transport: head digest %q", head)
	}
	_, body, err := s.Read(headID)
	if err != nil {
		return errors.Wrapf(err, "transport: read head commit %s", head)
	}
	treeID, err := parseHeadTree(body)
	if err != nil {
		return err
	}

	return errors.Wrap(s.Materialize(treeID, s.Root), "transport: materialize tree")
}

// parseHeadTree extracts the tree digest from a commit body's first
// line, "tree <hex>\n".
func parseHeadTree(body []byte) (object.ID, error) {
	const prefix = "tree "
	if !strings.HasPrefix(string(body), prefix) {
		return object.ZeroID, ErrHeadCommit
	}
	rest := body[len(prefix):]
	i := strings.IndexByte(string(rest), '\n')
	if i != 40 {
		return object.ZeroID, ErrHeadCommit
	}
	return object.DecodeID(string(rest[:i]))
}
