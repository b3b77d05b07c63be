package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// languageSeeds covers every statement shape of the language at least once.
var languageSeeds = []string{
	"",
	"int x = 5;\n",
	"final int a = 1, b;\n",
	"int x = y;\nint y = 5;\n",
	"double d = -.5;\nboolean b = true;\nchar c = 'c';\nString s = \"a;b{\";\n",
	"void f(int a, final double b) {\nif (a || b && true) {\nwhile (false) {\nreturn;\n}\n}\nreturn;\n}\n",
	"void foo(int a) { return; }\nvoid bar() {\nfoo(5);\nreturn;\n}\n",
	"// comment {\nint x;\nvoid g() {\nx = 3;\nreturn;\n}\n",
	"void f() {\nint x = y;\nint y = 5;\nreturn;\n}\n",
	"void f() {}\n",
	"int x = 5; int y = 6;\n",
	"void f() {\nreturn;\n",
	"}\n}\n",
	"int 1x = 2;\nint _ = 3;\nint while = 4;\n",
	"\ufeffint x = 1;\r\nvoid f() {\r\nreturn;\r\n}\r\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.sjava файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sjava" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// clampInput copies input and cuts it to maxFuzzInput.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
