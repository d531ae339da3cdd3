package seamcarve

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/seamcarve/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions lists the supported image file extensions.
var validExtensions = []string{".jpg", ".png", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// Ops describes the source and the destination of a carving run.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the resizing process and the generated image.
type result struct {
	path string
	err  error
}

// Execute runs the carving process over a local image, an image URL, a pipe
// or a whole directory. Directories are processed by a pool of workers, each
// image having its own carving session.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		src = op.Src
		err error
	)

	if p.Spinner == nil {
		defaultMsg := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("⇢ carving image (be patient, it may take a while)...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(op.Src)
		if f != nil {
			defer os.Remove(f.Name())
			f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		// Read destination file or directory.
		if _, err := os.Stat(op.Dst); err != nil {
			if err := os.Mkdir(op.Dst, 0755); err != nil {
				return fmt.Errorf("unable to create the destination directory: %w", err)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, src, validExtensions)

		// The workers don't share the progress indicator.
		wp := *p
		wp.Spinner = nil

		var wg sync.WaitGroup
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(&wp, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			if res.err != nil {
				err = res.err
			}
			op.printOpStatus(res.path, res.err)
		}

		if werr := <-errc; werr != nil {
			return werr
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !utils.Contains(validExtensions, ext) && op.Dst != op.PipeName {
			return fmt.Errorf("%v file type not supported", ext)
		}

		err = op.process(p, src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// consumer reads the path names from the paths channel and calls the resizing processor against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the resizer method over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	var (
		successMsg string
		errorMsg   string
	)
	p.startSpinner()

	successMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been carved successfully ✔", utils.SuccessMessage),
	)

	errorMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("carving image failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		p.stopSpinner(errorMsg)
		return err
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		close(signalChan)
	}()
	go func() {
		if _, ok := <-signalChan; ok {
			if p.Spinner != nil {
				p.Spinner.RestoreCursor()
			}
			os.Exit(1)
		}
	}()

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	defer func() {
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)
	if err != nil {
		// remove the generated image file in case of an error
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		p.stopSpinner(errorMsg)

		return err
	}
	p.stopSpinner(successMsg)

	return nil
}

// startSpinner starts the progress indicator, if there is one.
func (p *Processor) startSpinner() {
	if p.Spinner != nil {
		p.Spinner.Start()
	}
}

// stopSpinner stops the progress indicator and prints the closing message.
func (p *Processor) stopSpinner(msg string) {
	if p.Spinner != nil {
		p.Spinner.StopMsg = msg
		p.Spinner.Stop()
	}
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the image resizing process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Printf(
			utils.DecorateText("\nError carving the image %s: %s", utils.ErrorMessage),
			filepath.Base(fname),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, filepath.Ext(f.Name())) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
