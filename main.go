package main

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// Удобный запуск игрового сервера из корня репозитория.
func main() {
	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("Ошибка при определении рабочей директории: %v", err)
	}

	serverPath := filepath.Join(projectDir, "cmd", "server")

	cmd := exec.Command("go", "run", ".")
	cmd.Dir = serverPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Println("Запуск игрового сервера из директории", serverPath)
	if err := cmd.Run(); err != nil {
		log.Fatalf("Ошибка при запуске сервера: %v", err)
	}
}
