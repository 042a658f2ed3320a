package jobshop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrInstanceNotFound возвращается при запросе отсутствующего имени из каталога.
var ErrInstanceNotFound = errors.New("экземпляр задачи не найден")

// Текстовый формат каталога: строка "instance <имя>" открывает блок;
// далее, пропуская пустые строки и строки-разделители на '+',
// идёт строка "num_jobs num_machines", затем ровно num_jobs строк
// с чередующимися парами "станок длительность".

type parseLine struct {
	num  int
	text string
}

func readLines(r io.Reader) ([]parseLine, error) {
	var lines []parseLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		lines = append(lines, parseLine{num: n, text: strings.TrimSpace(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func isSkippable(s string) bool {
	return s == "" || strings.HasPrefix(s, "+")
}

// parseDims распознаёт строку размерностей: ровно два неотрицательных целых.
func parseDims(s string) (jobs, machines int, ok bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, false
	}
	j, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || j < 0 || m < 0 {
		return 0, 0, false
	}
	return j, m, true
}

// parseJobLine разбирает строку операций одной работы.
func parseJobLine(ln parseLine) ([]Operation, error) {
	parts := strings.Fields(ln.text)
	if len(parts) == 0 || len(parts)%2 != 0 {
		return nil, fmt.Errorf("строка %d: ожидалось чётное число полей пар (станок, длительность), получено %d", ln.num, len(parts))
	}
	ops := make([]Operation, 0, len(parts)/2)
	for k := 0; k < len(parts); k += 2 {
		machine, err := strconv.Atoi(parts[k])
		if err != nil {
			return nil, fmt.Errorf("строка %d, поле %d: нечисловой номер станка %q", ln.num, k+1, parts[k])
		}
		dur, err := strconv.Atoi(parts[k+1])
		if err != nil {
			return nil, fmt.Errorf("строка %d, поле %d: нечисловая длительность %q", ln.num, k+2, parts[k+1])
		}
		ops = append(ops, Operation{Machine: machine, Duration: dur})
	}
	return ops, nil
}

// parseBlock читает размерности и строки работ начиная с lines[i];
// возвращает экземпляр и индекс первой непрочитанной строки.
func parseBlock(lines []parseLine, i int) (*Instance, int, error) {
	// Поиск строки размерностей
	jobs, machines := 0, 0
	found := false
	for ; i < len(lines); i++ {
		if isSkippable(lines[i].text) || strings.HasPrefix(lines[i].text, "instance ") {
			if strings.HasPrefix(lines[i].text, "instance ") {
				return nil, i, fmt.Errorf("строка %d: блок не содержит строки размерностей", lines[i].num)
			}
			continue
		}
		var ok bool
		jobs, machines, ok = parseDims(lines[i].text)
		if !ok {
			return nil, i, fmt.Errorf("строка %d: ожидалась строка размерностей \"num_jobs num_machines\", получено %q", lines[i].num, lines[i].text)
		}
		found = true
		i++
		break
	}
	if !found {
		return nil, i, errors.New("строка размерностей \"num_jobs num_machines\" не найдена")
	}

	ops := make([][]Operation, 0, jobs)
	for len(ops) < jobs {
		for i < len(lines) && isSkippable(lines[i].text) {
			i++
		}
		if i >= len(lines) || strings.HasPrefix(lines[i].text, "instance ") {
			return nil, i, fmt.Errorf("ожидалось %d строк работ, получено %d", jobs, len(ops))
		}
		row, err := parseJobLine(lines[i])
		if err != nil {
			return nil, i, err
		}
		ops = append(ops, row)
		i++
	}

	inst, err := NewInstance(jobs, machines, ops)
	if err != nil {
		return nil, i, err
	}
	return inst, i, nil
}

// ParseInstances читает каталог именованных экземпляров.
func ParseInstances(r io.Reader) (map[string]*Instance, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	instances := make(map[string]*Instance)
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i].text, "instance ") {
			i++
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(lines[i].text, "instance "))
		if name == "" {
			return nil, fmt.Errorf("строка %d: пустое имя экземпляра", lines[i].num)
		}
		inst, next, err := parseBlock(lines, i+1)
		if err != nil {
			return nil, fmt.Errorf("экземпляр %q: %w", name, err)
		}
		instances[name] = inst
		i = next
	}
	return instances, nil
}

// ParseSingleInstance читает файл с одним экземпляром без заголовка.
// Файл-каталог отклоняется с перечислением доступных имён.
func ParseSingleInstance(r io.Reader) (*Instance, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	for _, ln := range lines {
		if strings.HasPrefix(ln.text, "instance ") {
			// Повторный разбор как каталога ради списка имён в ошибке
			var sb strings.Builder
			for _, l := range lines {
				sb.WriteString(l.text)
				sb.WriteByte('\n')
			}
			all, perr := ParseInstances(strings.NewReader(sb.String()))
			if perr != nil {
				return nil, fmt.Errorf("файл содержит именованные экземпляры, но разбор каталога не удался: %w", perr)
			}
			return nil, fmt.Errorf("файл содержит %d именованных экземпляров, укажите имя; доступные: %s",
				len(all), strings.Join(instanceNames(all), ", "))
		}
	}

	inst, _, err := parseBlock(lines, 0)
	return inst, err
}

// LoadInstance загружает экземпляр из файла: при непустом name — из каталога,
// иначе как одиночный файл.
func LoadInstance(path, name string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if name == "" {
		return ParseSingleInstance(f)
	}

	all, err := ParseInstances(f)
	if err != nil {
		return nil, err
	}
	inst, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q; доступные: %s", ErrInstanceNotFound, name, strings.Join(instanceNames(all), ", "))
	}
	return inst, nil
}

func instanceNames(m map[string]*Instance) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
