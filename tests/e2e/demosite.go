package e2e

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
)

// The suites run against a local stand-in for the practice site by default.
// The pages below mirror the live site's ids and flows closely enough that
// pointing UIHARNESS_LIVE_BASE_URL at the real thing exercises the same
// selectors.

const demoUsername = "practice"
const demoPassword = "SuperSecretPassword!"

func newDemoServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", serveHome)
	mux.HandleFunc("GET /inputs", serveWebInputs)
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		serveLogin(w, "")
	})
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("GET /register", func(w http.ResponseWriter, r *http.Request) {
		serveRegister(w, "")
	})
	mux.HandleFunc("POST /register", handleRegister)
	mux.HandleFunc("GET /secure", serveSecure)
	mux.HandleFunc("GET /dynamic-table", serveDynamicTable)
	mux.HandleFunc("GET /interactions", serveInteractions)
	mux.HandleFunc("GET /paginated", servePaginated)
	mux.HandleFunc("GET /js-dialogs", serveDialogs)
	mux.HandleFunc("GET /download/users.csv", serveDownload)
	return httptest.NewServer(mux)
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
%s
</body>
</html>`, title, body)
}

func serveHome(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Practice Home", `
<h1>Automation Practice</h1>
<ul>
  <li><a href="/inputs">Web inputs</a></li>
  <li><a href="/login">Test Login Page</a></li>
  <li><a href="/register">Test Register Page</a></li>
  <li><a href="/dynamic-table">Dynamic Table</a></li>
  <li><a href="/interactions">Drag, Drop and Sliders</a></li>
  <li><a href="/paginated">Paginated Items</a></li>
  <li><a href="/js-dialogs">JS Dialogs</a></li>
</ul>`)
}

func serveWebInputs(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Web inputs", `
<h1>Web inputs</h1>
<form onsubmit="return false">
  <input id="input-number" type="number" required>
  <input id="input-text" type="text">
  <input id="input-password" type="password">
  <input id="input-date" type="date">
  <select id="fruits">
    <option value="">pick one</option>
    <option value="apple">Apple</option>
    <option value="banana">Banana</option>
    <option value="cherry">Cherry</option>
  </select>
  <select id="colors" multiple>
    <option value="red">Red</option>
    <option value="green">Green</option>
    <option value="blue">Blue</option>
  </select>
  <input id="input-file" type="file" multiple>
  <button id="btn-display-inputs" onclick="display()">Display Inputs</button>
  <button id="btn-clear-inputs" onclick="clearInputs()">Clear Inputs</button>
</form>
<div>
  <span id="output-number"></span>
  <span id="output-text"></span>
  <span id="output-password"></span>
  <span id="output-date"></span>
</div>
<script>
function display() {
  for (const kind of ["number", "text", "password", "date"]) {
    document.getElementById("output-" + kind).textContent =
      document.getElementById("input-" + kind).value;
  }
}
function clearInputs() {
  for (const kind of ["number", "text", "password", "date"]) {
    document.getElementById("input-" + kind).value = "";
    document.getElementById("output-" + kind).textContent = "";
  }
}
</script>`)
}

func loginForm(flash string) string {
	flashDiv := ""
	if flash != "" {
		flashDiv = `<div id="flash">` + flash + `</div>`
	}
	return flashDiv + `
<h1>Test Login</h1>
<form method="post" action="/login">
  <input id="username" name="username" type="text">
  <input id="password" name="password" type="password">
  <button type="submit">Login</button>
</form>`
}

func serveLogin(w http.ResponseWriter, flash string) {
	writePage(w, "Test Login", loginForm(flash))
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	username := r.Form.Get("username")
	password := r.Form.Get("password")
	switch {
	case username != demoUsername:
		serveLogin(w, "Your username is invalid!")
	case password != demoPassword:
		serveLogin(w, "Your password is invalid!")
	default:
		http.Redirect(w, r, "/secure", http.StatusSeeOther)
	}
}

func serveSecure(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Secure Area", `
<div id="flash">You logged into a secure area!</div>
<h1>Secure Area</h1>
<a href="/login">Logout</a>`)
}

func registerForm(flash string) string {
	flashDiv := ""
	if flash != "" {
		flashDiv = `<div id="flash">` + flash + `</div>`
	}
	return flashDiv + `
<h1>Test Register</h1>
<form method="post" action="/register">
  <input id="username" name="username" type="text">
  <input id="password" name="password" type="password">
  <input id="confirmPassword" name="confirmPassword" type="password">
  <button type="submit">Register</button>
</form>`
}

func serveRegister(w http.ResponseWriter, flash string) {
	writePage(w, "Test Register", registerForm(flash))
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	username := r.Form.Get("username")
	password := r.Form.Get("password")
	confirm := r.Form.Get("confirmPassword")
	switch {
	case strings.TrimSpace(username) == "":
		serveRegister(w, "All fields are required.")
	case password != confirm:
		serveRegister(w, "Passwords do not match.")
	default:
		writePage(w, "Test Login", loginForm("Successfully registered, you can log in now."))
	}
}

var demoProcesses = []string{"Chrome", "Firefox", "Safari", "Edge", "Opera"}

func serveDynamicTable(w http.ResponseWriter, r *http.Request) {
	var rows strings.Builder
	chromeCPU := ""
	for _, name := range demoProcesses {
		cpu := fmt.Sprintf("%.1f%%", rand.Float64()*100)
		if name == "Chrome" {
			chromeCPU = cpu
		}
		fmt.Fprintf(&rows, `<tr>
  <td>%s</td>
  <td>%s</td>
  <td>%d MB</td>
  <td>%d MB</td>
  <td><input type="checkbox" name="select-%s"></td>
</tr>
`, name, cpu, rand.Intn(1024), rand.Intn(4096), strings.ToLower(name))
	}
	writePage(w, "Dynamic Table", fmt.Sprintf(`
<h1>Dynamic Table</h1>
<table>
  <thead>
    <tr><th>Name</th><th>CPU</th><th>Memory</th><th>Disk</th><th>Select</th></tr>
  </thead>
  <tbody>
%s  </tbody>
</table>
<p id="chrome-cpu">Chrome CPU: %s</p>
<div id="subscribe-modal" style="position:fixed;inset:0;background:rgba(0,0,0,.5)">
  <div class="modal">
    <p>Subscribe to our newsletter!</p>
    <button id="modal-close" onclick="document.getElementById('subscribe-modal').remove()">Close</button>
  </div>
</div>`, rows.String(), chromeCPU))
}

func serveInteractions(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Interactions", `
<h1>Interactions</h1>
<div id="drag-source" draggable="true" style="width:80px;height:80px;background:#8cf">drag me</div>
<div id="drop-target" style="width:140px;height:140px;border:2px dashed #888">drop here</div>
<p id="drop-status">waiting</p>
<input id="slider" type="range" min="0" max="100" value="0" style="width:300px">
<span id="slider-value">0</span>
<div style="height:2400px"></div>
<p id="bottom-marker">you reached the bottom</p>
<script>
const source = document.getElementById("drag-source");
const target = document.getElementById("drop-target");
source.addEventListener("dragstart", e => e.dataTransfer.setData("text/plain", "box"));
target.addEventListener("dragover", e => e.preventDefault());
target.addEventListener("drop", e => {
  e.preventDefault();
  document.getElementById("drop-status").textContent = "dropped";
});
const slider = document.getElementById("slider");
slider.addEventListener("input", () => {
  document.getElementById("slider-value").textContent = slider.value;
});
</script>`)
}

func servePaginated(w http.ResponseWriter, r *http.Request) {
	writePage(w, "Paginated Items", `
<h1>Paginated Items</h1>
<table id="items">
  <thead><tr><th>Name</th><th>Rank</th></tr></thead>
  <tbody></tbody>
</table>
<nav id="pagination"></nav>
<script>
const pageSize = 10, pageCount = 5;
function render(page) {
  const body = document.querySelector("#items tbody");
  body.innerHTML = "";
  for (let i = 1; i <= pageSize; i++) {
    const n = (page - 1) * pageSize + i;
    const row = document.createElement("tr");
    row.innerHTML = "<td>item-" + n + "</td><td>" + n + "</td>";
    body.appendChild(row);
  }
}
const nav = document.getElementById("pagination");
for (let p = 1; p <= pageCount; p++) {
  const link = document.createElement("a");
  link.href = "#";
  link.textContent = p;
  link.addEventListener("click", e => { e.preventDefault(); render(p); });
  nav.appendChild(link);
}
render(1);
</script>`)
}

func serveDialogs(w http.ResponseWriter, r *http.Request) {
	writePage(w, "JS Dialogs", `
<h1>JS Dialogs</h1>
<button id="btn-alert" onclick="alert('This is a JS Alert!'); setResult('alert shown')">Alert</button>
<button id="btn-confirm" onclick="setResult(confirm('Proceed?') ? 'confirmed' : 'cancelled')">Confirm</button>
<button id="btn-prompt" onclick="promptUser()">Prompt</button>
<a id="home-new-tab" href="/" target="_blank">Open home in new tab</a>
<a id="download-link" href="/download/users.csv">Download users</a>
<p id="dialog-result"></p>
<script>
function setResult(text) {
  document.getElementById("dialog-result").textContent = text;
}
function promptUser() {
  const answer = prompt("Type something:");
  setResult(answer === null ? "prompt cancelled" : "you typed: " + answer);
}
</script>`)
}

func serveDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	fmt.Fprintln(w, "username,password")
	fmt.Fprintln(w, "practice,SuperSecretPassword!")
}
