package libos

import (
	"os"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "os"

// LoadModule registers the os module with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module())
	return nil
}

// Module returns a new os module.
func Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		FuncAs("getenv", Getenv).
		FuncAs("work-dir", os.Getwd).
		FuncAs("exists?", Exists).
		FuncAs("dir?", IsDir).
		FuncAs("read-file", ReadFile).
		FuncAs("write-file", WriteFile).
		FuncAs("mkdir", Mkdir).
		FuncAs("remove", Remove)
}

// Getenv returns the value of the environment variable key, or nil if it is
// not set.
func Getenv(key string) lisp.Value {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	return val
}

func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ReadFile returns the contents of the file at path as a string.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile writes data to the file at path, creating it if necessary.
func WriteFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0644)
}

// Mkdir creates the directory at path along with any missing parents.
func Mkdir(path string) error {
	return os.MkdirAll(path, 0755)
}

func Remove(path string, recursive bool) error {
	if recursive {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
