/*
Package atomicfile replaces a file in one step: data goes to a temporary file
in the destination directory which is renamed over the destination on Close.

Readers see either the old content or the new content, never a partially
written file. If Write, Sync or Close fails, the temporary file is removed and
the destination is left as it was.

	func rewrite(path string, blocks [][]byte) error {
		f, err := atomicfile.New(path)
		if err != nil {
			return err
		}
		// removes temp file if we return early or panic
		defer f.RemoveIfNotClosed()

		for _, b := range blocks {
			if _, err = f.Write(b); err != nil {
				return err
			}
		}
		return f.Close()
	}

Close can be called multiple times and returns the first error.
*/
package atomicfile
