package render

// fragmentTemplates holds the repository grid fragments. They are served on
// their own to HTMX requests and embedded in the page.
const fragmentTemplates = `
{{define "card"}}<div class="repo-card bg-dark-800 rounded-xl p-6 border border-gray-700 flex flex-col justify-between">
  <div>
    <div class="flex items-start justify-between mb-2">
      <h3 class="text-xl font-bold text-white mb-2 break-all"><a href="{{.HTMLURL}}" target="_blank" rel="noopener">{{.Name}}</a></h3>
      {{- if .Archived}}
      <span class="archived-badge flex-shrink-0 ml-2 px-2 py-1 bg-red-500/20 text-red-400 rounded text-xs font-semibold">{{.Msg.Archived}}</span>
      {{- end}}
    </div>
    <p class="text-gray-300 mb-4 text-sm leading-relaxed h-16 overflow-hidden">{{.Description}}</p>
  </div>
  <div>
    <div class="flex items-center justify-between text-gray-400 text-sm mb-4">
      {{- if .Language}}
      <div class="flex items-center gap-2"><div class="w-3 h-3 rounded-full" style="background-color:{{.Color}}"></div><span>{{.Language}}</span></div>
      {{- else}}
      <div></div>
      {{- end}}
      <div class="flex gap-4"><span title="Stars">⭐ {{.Stars}}</span><span title="Forks">🍴 {{.Forks}}</span></div>
    </div>
    <div class="flex items-center justify-between">
      <span class="text-gray-500 text-xs">{{.Msg.Updated}} {{.Updated}}</span>
      <div class="flex gap-2">
        <a href="{{.HTMLURL}}" target="_blank" rel="noopener" class="px-3 py-1 bg-primary-500 text-white rounded text-sm">{{.Msg.View}}</a>
        <button type="button" data-clone="{{.CloneURL}}" class="copy-clone px-3 py-1 border border-primary-500 text-primary-500 rounded text-sm">{{.Msg.Clone}}</button>
      </div>
    </div>
  </div>
</div>
{{end}}

{{define "empty"}}<div class="col-span-full text-center py-12">
  <p class="text-gray-400">{{.NoResults}}</p>
</div>
{{end}}

{{define "error"}}<div class="col-span-full text-center py-12 text-red-400">
  <p>❌ {{.LoadError}}</p>
  <p class="text-sm text-gray-400 mt-2">{{.LoadErrorHint}}</p>
</div>
{{end}}

{{define "loading"}}<div class="col-span-full flex flex-col items-center justify-center py-16">
  <div class="github-loader relative w-16 h-16"><div class="absolute inset-0 rounded-full border-4 border-gray-700 animate-spin"></div></div>
  <p class="text-gray-400 mt-4 font-medium">{{.Loading}}</p>
</div>
{{end}}
`

const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Name}} — {{.Title}}</title>
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
  <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-dark-900 text-gray-200">
  <nav id="navbar" class="fixed w-full z-40">
    <div class="flex items-center justify-between px-6 py-4">
      <a href="#home" class="font-bold text-white">{{.Name}}</a>
      <button id="menu-toggle" type="button" class="md:hidden">☰</button>
      <div id="mobile-menu" class="hidden md:flex gap-6">
        <a href="#about">About</a><a href="#projects">Projects</a><a href="#contact">Contact</a>
      </div>
    </div>
  </nav>

  <section id="home" class="pt-24 px-6">
    <h1 class="text-4xl font-bold text-white">{{.Name}}</h1>
    <p class="text-gray-400">{{.Title}}</p>
  </section>

  <section id="about" class="px-6 py-12">
    <div class="prose prose-invert">{{.About}}</div>
    <div id="terminal-body" class="terminal font-mono text-sm bg-black rounded-lg p-4 mt-8">
      {{- range $i, $p := .Paragraphs}}
      <p id="typing-text-{{$i}}" class="output-line">{{$p}}</p>
      {{- end}}
      <div class="command-line">$ ls -la ~/projects</div>
      <pre id="terminal-ls-output" class="output-line">{{.Listing}}</pre>
      <div id="terminal-stats-output" class="output-line output-info">{{.Summary}}</div>
      <div class="command-line">$ <span id="current-command"></span><span class="cursor">▋</span></div>
    </div>
  </section>

  <section id="projects" class="px-6 py-12">
    <div class="flex flex-wrap gap-4 mb-6">
      <input id="repo-search" type="search" name="q" value="{{.SearchTerm}}" placeholder="Search…" class="px-4 py-2 rounded bg-dark-800"
        hx-get="/repos" hx-trigger="input changed delay:200ms, search" hx-target="#repositories-grid" hx-include="#active-filter" hx-indicator="#grid-loading">
      <input id="active-filter" type="hidden" name="filter" value="{{.ActiveFilter}}">
      {{- range .Filters}}
      <button type="button" class="filter-btn px-4 py-2 rounded{{if .Active}} active bg-primary-500 text-white{{end}}" data-filter="{{.Mode}}">{{.Label}}</button>
      {{- end}}
    </div>
    <div id="grid-loading" class="htmx-indicator">{{.Loading}}</div>
    <div id="repositories-grid" class="grid md:grid-cols-2 lg:grid-cols-3 gap-6">{{.Grid}}</div>
  </section>

  <section id="contact" class="px-6 py-12">
    <form id="contact-form" method="post" action="/contact" class="flex flex-col gap-4 max-w-lg">
      <input id="name" name="name" placeholder="Name" required>
      <input id="email" name="email" type="email" placeholder="Email" required>
      <textarea id="message" name="message" placeholder="Message" required></textarea>
      <button type="submit">Send</button>
    </form>
  </section>

  <script>
  (function () {
    var toggle = document.getElementById('menu-toggle');
    var menu = document.getElementById('mobile-menu');
    if (toggle && menu) toggle.addEventListener('click', function () { menu.classList.toggle('hidden'); });

    document.querySelectorAll('.filter-btn').forEach(function (btn) {
      btn.addEventListener('click', function () {
        document.querySelectorAll('.filter-btn').forEach(function (b) { b.classList.remove('active', 'bg-primary-500', 'text-white'); });
        btn.classList.add('active', 'bg-primary-500', 'text-white');
        document.getElementById('active-filter').value = btn.dataset.filter;
        htmx.trigger('#repo-search', 'search');
      });
    });

    document.body.addEventListener('click', function (e) {
      var btn = e.target.closest('.copy-clone');
      if (!btn || !navigator.clipboard) return;
      navigator.clipboard.writeText(btn.dataset.clone).then(function () {
        var toast = document.createElement('div');
        toast.className = 'fixed top-24 right-4 bg-green-500 text-white px-4 py-2 rounded-lg shadow-lg z-50';
        toast.style.transition = 'opacity {{.ToastFadeMillis}}ms';
        toast.textContent = {{.CopiedMessage}};
        document.body.appendChild(toast);
        setTimeout(function () {
          toast.style.opacity = '0';
          setTimeout(function () { toast.remove(); }, {{.ToastFadeMillis}});
        }, {{.ToastMillis}});
      }).catch(function (err) { console.error('clipboard write failed:', err); });
    });

    var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + location.host + '/terminal/ws');
    ws.onmessage = function (ev) {
      var f = JSON.parse(ev.data);
      var el = f.target === 'command' ? document.getElementById('current-command') : document.getElementById('typing-text-' + f.target);
      if (!el) return;
      if (f.op === 'clear') el.textContent = ''; else el.textContent += f.text;
    };
  })();
  </script>
</body>
</html>
`
