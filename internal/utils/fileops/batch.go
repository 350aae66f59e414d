package fileops

import "os"

// Batch writes a set of files all or nothing. Contents are staged in
// temporary files first; Commit renames them into place and restores the
// previous state of every target when one rename fails.
type Batch struct {
	fo     *FileOps
	staged []stagedFile
}

type stagedFile struct {
	target   string
	tmp      string
	previous []byte
	existed  bool
	mode     os.FileMode // permissions of the previous file
}

// NewBatch starts an empty batch
func (fo *FileOps) NewBatch() *Batch {
	return &Batch{fo: fo}
}

// Stage writes content to a temporary file next to filePath. A failure
// discards everything staged so far.
func (b *Batch) Stage(filePath string, content []byte, perm os.FileMode) error {
	clean, tmpName, err := writeTemp(filePath, content, perm)
	if err != nil {
		b.Discard()
		return err
	}

	staged := stagedFile{target: clean, tmp: tmpName}
	if info, err := os.Stat(clean); err == nil && info.Mode().IsRegular() {
		if previous, err := os.ReadFile(clean); err == nil {
			staged.previous = previous
			staged.existed = true
			staged.mode = info.Mode().Perm()
		}
	}
	b.staged = append(b.staged, staged)
	return nil
}

// Commit moves every staged file into place in staging order
func (b *Batch) Commit() error {
	for i, staged := range b.staged {
		if err := os.Rename(staged.tmp, staged.target); err != nil {
			b.rollback(i)
			return wrap(opWrite, staged.target, err)
		}
	}
	b.staged = nil
	return nil
}

// Discard removes every staged temporary file
func (b *Batch) Discard() {
	for _, staged := range b.staged {
		os.Remove(staged.tmp)
	}
	b.staged = nil
}

// rollback restores the targets committed before failed and discards the
// temporary files from failed on
func (b *Batch) rollback(failed int) {
	for _, staged := range b.staged[:failed] {
		if staged.existed {
			b.fo.WriteFile(staged.target, staged.previous, staged.mode)
		} else {
			os.Remove(staged.target)
		}
	}
	for _, staged := range b.staged[failed:] {
		os.Remove(staged.tmp)
	}
	b.staged = nil
}
