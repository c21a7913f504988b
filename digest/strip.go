package digest

// StripComments returns s with all comments removed and internal whitespace
// collapsed to single spaces, without touching literals. It is a structural
// subset of Digest: same comment-mode handling, no string/number/grouping
// logic, no NULL rewriting.
func StripComments(s []byte, cfg Config) string {
	length := len(s)
	if cfg.MaxQueryLength > 0 && length > cfg.MaxQueryLength {
		length = cfg.MaxQueryLength
	}

	out := newOutBuf(length + 1)

	var (
		i        int
		mode     = modeNormal
		prevChar byte
		fns      bool
	)
	wt := 0

	for i < length {
		if mode == modeNormal {
			wt = out.pos()

			switch {
			case prevChar == '/' && s[i] == '*':
				mode = modeBlockComment
				goto copyChar

			case s[i] == '#':
				mode = modeLineHash
				goto copyChar

			case s[i] == '-' && i < length-2 && s[i+1] == '-' &&
				(s[i+2] == ' ' || s[i+2] == '\n' || s[i+2] == '\r' || s[i+2] == '\t'):
				mode = modeLineDash
				goto copyChar

			default:
				if !fns && isSpaceByte(s[i]) {
					i++
					continue
				}
				if !fns {
					fns = true
				}
				if isSpaceByte(prevChar) && isSpaceByte(s[i]) {
					prevChar = ' '
					i++
					continue
				}
				goto copyChar
			}
		}

		switch mode {
		case modeBlockComment, modeLineHash, modeLineDash:
			closing := (mode == modeBlockComment && prevChar == '*' && s[i] == '/') ||
				(mode == modeLineHash && (s[i] == '\n' || s[i] == '\r' || i == length-1)) ||
				(mode == modeLineDash && (s[i] == '\n' || s[i] == '\r' || i == length-1))

			if closing {
				out.truncate(wt)
				if mode == modeBlockComment || i == length-1 {
					out.truncate(out.pos() - 1)
				}
				prevChar = ' '
				mode = modeNormal
				i++
				continue
			}
			goto copyChar
		}

	copyChar:
		c := s[i]
		switch {
		case isSpaceByte(c):
			c = ' '
		case cfg.Lowercase:
			c = toLowerASCII(c)
		}
		out.writeByte(c)
		prevChar = s[i]
		i++
	}

	if out.pos() > 0 && out.at(out.pos()-1) == ' ' {
		out.truncate(out.pos() - 1)
	}

	return out.String()
}
