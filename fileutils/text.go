package fileutils

import "github.com/spf13/afero"

func ReadFileString(fs afero.Fs, filename string) (string, error) {
	contents, err := afero.ReadFile(fs, filename)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}
