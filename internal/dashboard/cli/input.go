package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword — подменяемая в тестах ссылка на term.ReadPassword,
// чтобы не трогать терминал.
var readPassword = term.ReadPassword

// GetSimpleText печатает приглашение и читает одну строку ввода.
// Завершающий перевод строки отбрасывается.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault читает строку ввода, пустая строка заменяется
// значением по умолчанию.
func GetTextWithDefault(reader *bufio.Reader, label, def string, w io.Writer) (string, error) {
	prompt := label
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", label, def)
	}
	value, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// GetPassword печатает приглашение и читает пароль без отображения
// вводимых символов.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// Confirm задаёт вопрос и возвращает true только на явный ответ "y"/"yes".
func Confirm(reader *bufio.Reader, question string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(reader, question+" (y/N)", w)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
